package errors

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// Field messages shared by entity and request validation.
const (
	MsgRequired = "This field is required."
	MsgBlank    = "This field may not be blank."
	MsgInvalid  = "Invalid value."
)

// FieldErrors is implemented by errors that name offending fields.
type FieldErrors interface {
	Fields() map[string][]string
}

// ValidationError collects per-field messages. It renders as a 400.
type ValidationError struct {
	fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{fields: make(map[string][]string)}
}

// FieldError is shorthand for a validation error on a single field.
func FieldError(field, message string) *ValidationError {
	ve := NewValidationError()
	ve.Add(field, message)

	return ve
}

func (e *ValidationError) Add(field, message string) {
	e.fields[field] = append(e.fields[field], message)
}

// Addf formats message before adding it.
func (e *ValidationError) Addf(field, format string, args ...any) {
	e.Add(field, fmt.Sprintf(format, args...))
}

func (e *ValidationError) Has(field string) bool {
	_, ok := e.fields[field]

	return ok
}

// Merge copies messages from other for fields this error does not mention yet.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, messages := range other.fields {
		if !e.Has(field) {
			e.fields[field] = slices.Clone(messages)
		}
	}
}

func (e *ValidationError) HasErrors() bool {
	return len(e.fields) > 0
}

// OrNil returns nil when nothing was collected, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}

	return e
}

func (e *ValidationError) Fields() map[string][]string {
	return maps.Clone(e.fields)
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Details()
}

func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

func (e *ValidationError) Message() string {
	return "Invalid input."
}

// Details lists fields in a stable order.
func (e *ValidationError) Details() string {
	keys := slices.Sorted(maps.Keys(e.fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.fields[k], " "))
	}

	return strings.Join(parts, "; ")
}
