// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package resource keeps a local list of back-office entities in sync with the
// server. Every mutation goes through the server first; the local list only
// changes after the server accepted the call.
package resource

import (
	"context"
	"io"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/resource_mock.go -package=mock

// Entity is any resource model identified by a server-assigned id.
type Entity interface {
	EntityID() int64
}

// Client performs the remote CRUD calls of one resource.
type Client[T any] interface {
	Name() string
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id int64, item T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Uploader is implemented by clients that accept file uploads.
type Uploader[T any] interface {
	Upload(ctx context.Context, fileName string, r io.Reader) (T, error)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt. Used for non-interactive runs.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
