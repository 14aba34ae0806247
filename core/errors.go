package core

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrIncompleteRecord is returned when a record lacks a reference a form requires.
var (
	ErrIncompleteRecord = errors.New("record is missing required references")
	ErrDialogClosed     = errors.New("dialog is not open")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError // in field order
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// FieldMap returns the field errors keyed by field name.
func (err ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(err.Fields))
	for _, fe := range err.Fields {
		if _, ok := m[fe.Field]; !ok {
			m[fe.Field] = fe.Error
		}
	}
	return m
}

// APIError is the normalized failure of a call to the server of record.
// Status is 0 when the request never got a response.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (err *APIError) Error() string {
	switch {
	case err.Status == 0 && err.Err != nil:
		return "transport: " + err.Err.Error()
	case err.Message != "":
		return fmt.Sprintf("%d %s", err.Status, err.Message)
	default:
		return fmt.Sprintf("%d %s", err.Status, http.StatusText(err.Status))
	}
}

func (err *APIError) Unwrap() error { return err.Err }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether err is (or wraps) a 404 from the server of record.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
