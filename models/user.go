// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// UserSummary is the compact user record returned by the user directory search.
type UserSummary struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// ToSearchResult maps a directory hit onto a search row.
func (u UserSummary) ToSearchResult() SearchResult {
	description := u.Email
	if description == "" {
		description = "No email provided"
	}

	return SearchResult{
		ID:            u.ID,
		EntityType:    UserEntityType,
		DisplayName:   u.Username,
		Description:   description,
		AssignedUsers: []string{u.Username},
	}
}
