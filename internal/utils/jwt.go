package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of access token claims the client relies on.
type TokenClaims struct {
	Subject   string
	Username  string
	ExpiresAt time.Time
	Roles     []string
}

// accessTokenClaims matches the identity provider's access token layout.
type accessTokenClaims struct {
	jwt.RegisteredClaims
	PreferredUsername string `json:"preferred_username"`
	RealmAccess       struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
}

// ParseTokenClaims decodes the claims of an access token without verifying
// its signature. The backend verifies every request; the client only needs
// the expiry and the identity to schedule refreshes and label output.
func ParseTokenClaims(tokenString string) (TokenClaims, error) {
	claims := &accessTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return TokenClaims{}, fmt.Errorf("error parsing access token: %w", err)
	}

	result := TokenClaims{
		Subject:  claims.Subject,
		Username: claims.PreferredUsername,
		Roles:    claims.RealmAccess.Roles,
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	if result.Username == "" {
		result.Username = result.Subject
	}

	return result, nil
}
