package server

import "errors"

var (
	errStatusDisabled = errors.New("status server disabled")
	errNoHandlers     = errors.New("status server has no handlers")
)
