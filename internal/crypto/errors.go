package crypto

import "errors"

var (
	// ErrMalformed is returned when a sealed value cannot be decoded.
	ErrMalformed = errors.New("malformed sealed value")

	// ErrWrongKey is returned when authentication of a sealed value fails,
	// which almost always means the passphrase changed.
	ErrWrongKey = errors.New("sealed value cannot be opened with this key")

	// ErrKeyRequired is returned by [Plain] for sealed input.
	ErrKeyRequired = errors.New("credential cache is sealed, a storage key is required")
)
