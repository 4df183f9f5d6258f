// Package errs provides the error types shared by the order lifecycle engine.
//
// Every type follows the same shape: a sentinel error (ErrValueIsRequired,
// ErrValueIsInvalid, ErrValueIsOutOfRange, ErrObjectNotFound), a struct carrying the
// offending parameter, constructors with and without a cause, and an Unwrap method
// returning the sentinel so callers can classify failures with errors.Is.
package errs
