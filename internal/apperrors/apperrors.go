package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidRequest = errors.New("invalid request body")
	ErrValidation     = errors.New("validation failed")
	ErrUnauthorized   = errors.New("authentication required")

	ErrForbidden           = errors.New("forbidden")
	ErrNotClaimed          = errors.New("task is not claimed by this worker")
	ErrClaimHeld           = errors.New("worker already holds a claim on another task")
	ErrConcurrencyConflict = errors.New("concurrent claim conflict")
)

// ValidationError carries per-field messages so the caller can redisplay the
// submission form.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) WithField(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}

	e.Fields[field] = message

	return e
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}

	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type ForbiddenError struct{ Reason string }

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Reason)
}
func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }
