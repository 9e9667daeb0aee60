// Package order provides the Order aggregate root of the fulfillment
// pipeline: creation with price snapshots, item replacement, and the status
// state machine that every downstream generator (kitchen sheet, delivery,
// invoice) advances.
//
// State transitions (T = terminal):
//
//	DRAFT ──┬──> PENDING ──┬──> APPROVED ──> KITCHEN_PREP ──> READY ──> IN_DELIVERY ──> DELIVERED(T)
//	        │              ├──> REJECTED(T)   │
//	        │              └──> CANCELLED(T)  └──> CANCELLED(T)
//	        ├──> APPROVED
//	        ├──> REJECTED(T)
//	        └──> CANCELLED(T)
//
// Key business rules:
//   - totalAmount always equals the sum of the current item line totals
//   - items may only change while the order is DRAFT or PENDING
//   - every illegal transition returns errs.InvalidStateTransitionError
package order
