package store

import (
	"context"

	"github.com/ogdevs/backoffice-client/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// CredentialRepository persists the single cached session of the client.
type CredentialRepository interface {
	Save(ctx context.Context, credential models.Credential) error
	Load(ctx context.Context) (models.Credential, error)
	Clear(ctx context.Context) error
}
