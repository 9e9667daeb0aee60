// Package invoice provides the Invoice aggregate generated for a DELIVERED
// order together with its payments.
//
// Key business rules:
//   - totalAmount = subtotal - discount + tax - returnAdjustment
//   - subtotal is frozen from the order total at generation
//   - the sum of payments never exceeds totalAmount when a payment is taken
//   - status is computed by DeriveStatus; CANCELLED is never derived and,
//     once set, is kept
package invoice
