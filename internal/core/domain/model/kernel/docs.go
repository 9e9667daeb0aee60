// Package kernel provides the shared primitives of the fulfillment domain.
//
// The package includes:
//   - UUID: a validated identifier wrapper used by every aggregate
//   - document numbers: date-prefixed daily sequences such as ORD-20260115-0007
//   - money helpers over shopspring/decimal (rounding, sums, non-negative checks)
//
// These primitives carry no persistence concerns; repositories convert them
// to column types at the adapter boundary.
package kernel
