package auth

import "errors"

var (
	// ErrNotAuthenticated is returned when no usable credential exists and the
	// user has to go through the identity provider login first.
	ErrNotAuthenticated = errors.New("user is not authenticated")

	// ErrInvalidGrant is returned when the identity provider rejects the
	// supplied username/password or refresh token.
	ErrInvalidGrant = errors.New("invalid credentials or expired session")

	// ErrIdentityProvider is returned for any other token endpoint failure.
	ErrIdentityProvider = errors.New("identity provider error")
)
