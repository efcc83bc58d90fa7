// Package errs provides standardized error types for the pharmacy application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - AuthorizationError: For when the caller may not perform an operation
//   - ConflictError: For when a transaction loses a concurrency race
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// ConflictError occupies a special place in the taxonomy: it is the only
// error kind that command handlers may retry, because re-running a failed
// transaction from scratch after a stale read is safe. Every other kind is
// terminal for the request that produced it.
package errs
