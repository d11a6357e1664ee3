// Package apperr defines the domain error kinds shared by every service:
// not-found, validation, operation and internal. Errors are created where the
// condition is detected and mapped to an HTTP status once, at the boundary.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindOperation
)

// Error carries a kind and a user-facing message. The wrapped cause, if any,
// never reaches the HTTP response.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound signals that a referenced entity, slot or appointment is absent.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation signals malformed or conflicting input.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Operation signals a write that should have succeeded but affected zero rows:
// a lost race or a precondition that disappeared between check and act.
func Operation(format string, args ...any) *Error {
	return &Error{Kind: KindOperation, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure behind a generic message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Error interno del servidor", Err: err}
}

// KindOf classifies any error; non-domain errors count as internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusCode maps an error kind to the HTTP status the boundary responds with.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// Detail returns the message safe to show a caller. Internal causes are
// replaced by a generic message so no raw failure detail leaks.
func Detail(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "Error interno del servidor"
}
