// Package delivery provides the Delivery aggregate generated from a READY
// order, its driver workflow and the cold-chain temperature log.
//
// State transitions:
//
//	PENDING ──> ASSIGNED ──> IN_TRANSIT ──> DELIVERED
//	              │  ↺           │
//	              └──────────────┴────────> FAILED
//
// Reassigning a driver is allowed while the delivery is PENDING or ASSIGNED.
// Start, complete and fail must be issued by the assigned driver.
package delivery
