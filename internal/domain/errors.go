package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a domain failure so callers can map it without
// inspecting messages.
type ErrorCode string

const (
	CodeValidation        ErrorCode = "validation"
	CodeNotFound          ErrorCode = "not_found"
	CodeInvalidTransition ErrorCode = "invalid_status_transition"
	CodeInvalidOperation  ErrorCode = "invalid_operation"
	CodeAlreadyExists     ErrorCode = "already_exists"
)

// Error is returned by aggregate factories, mutators and the coordinator.
type Error struct {
	Code    ErrorCode
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Is lets errors.Is match on the code alone, e.g. errors.Is(err, &Error{Code: CodeNotFound}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

func ValidationError(field, message string) error {
	return &Error{Code: CodeValidation, Field: field, Message: message}
}

func NotFound(entity string, id any) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s with ID %v was not found", entity, id)}
}

func InvalidTransition(from, to TaskStatus) error {
	return &Error{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition task status from %s to %s", from, to),
	}
}

func InvalidOperation(format string, args ...any) error {
	return &Error{Code: CodeInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

func AlreadyExists(entity, key string) error {
	return &Error{Code: CodeAlreadyExists, Message: fmt.Sprintf("%s %s already exists", entity, strings.TrimSpace(key))}
}

// IsCode reports whether err, or anything it wraps, is a domain error with code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// CodeOf returns the domain code carried by err, or "" for foreign errors.
func CodeOf(err error) ErrorCode {
	var de *Error
	if !errors.As(err, &de) {
		return ""
	}
	return de.Code
}
