// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Credential is the identity-provider token pair held for the current session.
//
// AccessToken is attached as a bearer token to REST calls and as the
// access_token query parameter of the realtime endpoint. ExpiresAt is taken
// from the access token "exp" claim when it can be read, otherwise from the
// expires_in field of the token response.
type Credential struct {
	Subject      string    `json:"subject"`
	Username     string    `json:"username"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Roles        []string  `json:"roles,omitempty"`
}

// Empty reports whether c holds no access token at all.
func (c Credential) Empty() bool {
	return c.AccessToken == ""
}

// ExpiresWithin reports whether the access token expires before now+d.
// A zero ExpiresAt is treated as already expired.
func (c Credential) ExpiresWithin(now time.Time, d time.Duration) bool {
	if c.ExpiresAt.IsZero() {
		return true
	}
	return !c.ExpiresAt.After(now.Add(d))
}

// HasRole reports whether role is among the realm roles of the credential.
func (c Credential) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
