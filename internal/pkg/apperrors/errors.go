package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrDatabase = errors.New("database error")

	ErrMapping = errors.New("row mapping failed")

	ErrInternalServer = errors.New("internal server error")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {

	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

// NotFoundError reports a lookup by key that matched no row. It carries the
// HTTP status the route layer should answer with.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such %s: %v", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func (e *NotFoundError) StatusCode() int {
	return http.StatusNotFound
}

func NewNotFoundError(resource string, id any) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// MappingError is returned when a result row does not have the shape the
// entity expects: a missing or unexpected column, or a value of the wrong type.
type MappingError struct {
	Entity string
	Column string
	Cause  error
}

func (e *MappingError) Error() string {
	msg := fmt.Sprintf("cannot map row to %s", e.Entity)
	if e.Column != "" {
		msg += fmt.Sprintf(" (column %q)", e.Column)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *MappingError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrMapping}
	}
	return []error{ErrMapping, e.Cause}
}
