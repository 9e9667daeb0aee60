// Package services holds domain logic that does not belong to a single
// aggregate.
//
// The package includes:
//   - ReplenishmentPlanner: reorder quantities for low store stock
package services
