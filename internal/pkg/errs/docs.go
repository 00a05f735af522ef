// Package errs provides standardized error types for the shipflow application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: single value problems
//   - ObjectNotFoundError, ObjectAlreadyExistsError: lookups and unique keys
//   - ValidationError: every missing field of a submitted form, reported at once
//   - PermissionError: a field or operation not allowed in the record's current state
//   - StorageError: the store was unreachable or rejected the write
//   - SequenceConflictError: two creators raced for the same sequence number
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Transport adapters map the sentinels to status codes; the messages are
// meant to be shown to users as-is.
package errs
