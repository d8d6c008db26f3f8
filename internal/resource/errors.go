package resource

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrCancelled  = errors.New("operation cancelled")
	ErrNotLoaded  = errors.New("entity is not in the list")
)
