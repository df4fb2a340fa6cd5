// Package errors is the project-wide error toolkit. It re-exports the
// stdlib inspection helpers and the pkg/errors wrappers behind a single
// import so call sites never have to juggle both packages.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns a plain error with the given text and no stack trace.
// Use Errorf when a stack trace is wanted.
func New(text string) error {
	return stderrors.New(text)
}

// Errorf formats an error message and records the call stack.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

// Wrap annotates err with message and records the call stack.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message and records the call stack.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records the call stack without changing the error message.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// WithMessage annotates err with message without recording a stack.
func WithMessage(err error, message string) error {
	return pkgerrors.WithMessage(err, message)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the next error in err's tree, or nil.
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join combines errs into a single error value.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// Cause walks Wrap chains to the original error.
//
//nolint:wrapcheck // Passthrough keeps pkg/errors semantics intact.
func Cause(err error) error {
	return pkgerrors.Cause(err)
}
