package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrTimeout             = errors.New("request timed out")
	ErrUnsupported         = errors.New("operation not supported by resource")
)

// HTTPError is a non-2xx response. It unwraps to one of the sentinel errors
// above when the status code has one.
type HTTPError struct {
	StatusCode int
	Body       string

	kind error
}

func (e *HTTPError) Error() string {
	if e.kind != nil {
		return fmt.Sprintf("%s: %s", e.kind, e.Body)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPError) Unwrap() error {
	return e.kind
}
