// Package errs provides standardized error types for the application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the codebase.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - A struct type carrying the error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for classification
//
// The taxonomy maps onto how callers are expected to react:
//   - ValueIsRequired / ValueIsInvalid / ValueIsOutOfRange: malformed input,
//     rejected before any state is mutated
//   - ObjectNotFound: the referenced entity does not exist
//   - Conflict: a lost race or business-rule conflict, surfaced to the caller
//     for an explicit decision or retry
//   - InvalidTransition: a state-machine violation that aborts only the
//     offending operation, leaving the aggregate at its last valid state
package errs
