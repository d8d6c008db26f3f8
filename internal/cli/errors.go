package cli

import (
	"errors"

	"github.com/ogdevs/backoffice-client/internal/adapter"
)

var errMissingUsername = errors.New("username is required")

// userError carries the alert text of a REST failure and still unwraps to it.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func describe(err error) error {
	return &userError{msg: adapter.Message(err), err: err}
}
