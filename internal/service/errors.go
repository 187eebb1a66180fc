package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrAuth         = errors.New("authentication failed")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrPersistence  = errors.New("persistence failure")
	ErrNotification = errors.New("notification failure")
)

// User-facing messages. The reset-request message is returned for every
// outcome so callers cannot tell whether an email is registered.
const (
	MsgEmailRegistered    = "Email is already registered."
	MsgInvalidCredentials = "Invalid email or password"
	MsgStaffInactive      = "Your staff account is not active. Please contact administrator."
	MsgResetRequested     = "If an account with that email exists, a password reset link has been sent."
	MsgResetInvalid       = "Password reset token is invalid or has expired."
	MsgResetCompleted     = "Password has been reset successfully."
	MsgInternal           = "An internal error occurred."
)

// Error pairs a taxonomy kind with the message shown to the caller. The
// underlying cause, if any, is reachable through errors.Is/As but never
// rendered.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func validationError(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundError(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func persistenceError(op string, err error) error {
	return &Error{Kind: ErrPersistence, Message: MsgInternal, Err: fmt.Errorf("%s: %w", op, err)}
}

func invalidCredentials() error {
	return &Error{Kind: ErrAuth, Message: MsgInvalidCredentials}
}
