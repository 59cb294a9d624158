// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Domain-specific failure kinds (invalid transitions, assignment races,
// verification failures, payout conflicts) live next to the aggregates that
// raise them; this package carries only the generic validation and lookup
// errors shared across layers.
package errs
