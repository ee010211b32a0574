package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("conflict")
	ErrPrecondition   = errors.New("precondition failed")
	ErrInfrastructure = errors.New("infrastructure failure")
	ErrCanceled       = errors.New("canceled by user")
)

// Error is a user-facing error: Msg is shown as is, Kind drives dispatch.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Precondition(format string, args ...any) error {
	return &Error{Kind: ErrPrecondition, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(msg string, cause error) error {
	return &Error{Kind: ErrConflict, Msg: msg, Err: cause}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Infrastructure(cause error) error {
	return &Error{Kind: ErrInfrastructure, Msg: "database is unavailable", Err: cause}
}

func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

// FieldValidationError reports a single form field that failed a rule.
type FieldValidationError struct {
	Field  string
	Reason string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldValidationError) Unwrap() error { return ErrValidation }

// Translated reports whether err already belongs to the taxonomy above.
func Translated(err error) bool {
	var (
		e  *Error
		fe *FieldValidationError
	)
	return errors.As(err, &e) || errors.As(err, &fe) || errors.Is(err, ErrCanceled)
}

// Message returns the text to show to the operator.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}
