package model

import (
	"errors"
	"fmt"
)

// NetworkError reports a transport-level failure (DNS, refused connection,
// reset, cancelled context).
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	URL  string
	Code int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.Code)
}

// SchemaError reports a response that is not the expected shape.
type SchemaError struct {
	Field string // dotted path of the missing or malformed field, if known
	Err   error
}

func (e *SchemaError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("schema error at %s: %v", e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("schema error: missing field %s", e.Field)
	case e.Err != nil:
		return fmt.Sprintf("schema error: %v", e.Err)
	default:
		return "schema error"
	}
}

func (e *SchemaError) Unwrap() error { return e.Err }

// MissingField builds a SchemaError for an absent field.
func MissingField(field string) *SchemaError {
	return &SchemaError{Field: field}
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr) && statusErr.Code == 404
}
