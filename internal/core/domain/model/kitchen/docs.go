// Package kitchen models the packing worksheet derived 1:1 from an approved
// order.
//
// A sheet starts PENDING, moves to IN_PROGRESS when the first item is packed
// and to COMPLETED when every item (at least one) is packed. Completion is
// reported to the caller so the owning order can be marked READY in the
// same unit of work.
package kitchen
