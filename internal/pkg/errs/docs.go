// Package errs holds the error types shared by the domain, the application
// layer and the adapters.
//
// Value errors (ValueIsRequiredError, ValueIsInvalidError,
// ValueIsOutOfRangeError) report bad input. ObjectNotFoundError reports a
// missing aggregate and DuplicateKeyError a unique constraint rejected by
// storage. Stock, carton and order rule violations are BusinessRuleError
// values tagged with a sentinel such as ErrInsufficientStock, so callers
// test them with errors.Is.
//
// Code and ClassOf turn any of these, wrapped or joined, into the stable code
// and the broad class (invalid, not found, conflict) that the HTTP adapter
// reports.
package errs
