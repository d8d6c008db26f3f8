// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the REST collaborators of the back-office client.
//
// Every collaborator shares one resty client rooted at the configured base
// URL and attaches the bearer token obtained from a [TokenSource] to each
// request. Error values defined in errors.go are mapped from HTTP status codes
// by mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401), and
// [Message] turns any of them into a line fit for an alert.
package adapter

import (
	"context"

	"github.com/ogdevs/backoffice-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// TokenSource yields a bearer token valid for at least the next request.
// Implementations refresh the token when it is close to expiry and return an
// error wrapping the auth package's ErrNotAuthenticated when no credential
// exists.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// EntitySearcher queries the global entity search endpoint.
type EntitySearcher interface {
	// SearchEntities returns the entities matching query in server order.
	SearchEntities(ctx context.Context, query string) ([]models.SearchResult, error)
}

// UserDirectory queries the user directory.
type UserDirectory interface {
	// SearchUsers returns the users whose name or email matches query.
	SearchUsers(ctx context.Context, query string) ([]models.UserSummary, error)
}

// ChatRooms manages chat rooms over REST. Messages themselves travel over the
// realtime channel.
type ChatRooms interface {
	Rooms(ctx context.Context) ([]models.ChatRoom, error)
	LastMessages(ctx context.Context, roomIDs []int64) ([]models.ChatMessage, error)
	Messages(ctx context.Context, roomID int64) ([]models.ChatMessage, error)
	CreateRoom(ctx context.Context, req models.ChatRoomCreationRequest) (models.ChatRoom, error)
	JoinRoom(ctx context.Context, roomID int64) (models.ChatRoom, error)
	LeaveRoom(ctx context.Context, roomID int64) error
	DeleteRoom(ctx context.Context, roomID int64) error
	MarkAsRead(ctx context.Context, messageID int64) error
}
