// Package errs provides the typed error taxonomy of the fulfillment engine.
// Every operation returns one of these kinds to its immediate caller; there is
// no mapping to transport status codes inside the core.
//
// The package includes:
//   - ObjectNotFoundError: a referenced order, product, user or document does not exist
//   - InvalidStateTransitionError: an operation is not legal in the current status
//   - ValueIsInvalidError / ValueIsRequiredError / ValueIsOutOfRangeError: malformed input
//   - AlreadyExistsError: a uniqueness constraint rejected an insert
//   - ExternalServiceError: a collaborator (notification channel) failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works on the kind
package errs
