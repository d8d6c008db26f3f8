package store

import (
	"context"
	"fmt"

	"github.com/ogdevs/backoffice-client/internal/config"
	"github.com/ogdevs/backoffice-client/internal/crypto"
	"github.com/ogdevs/backoffice-client/internal/logger"
)

// ClientStorages groups the client-side repositories into a single value
// that is handed to the auth collaborator.
type ClientStorages struct {
	// Credentials is the sqlite-backed session cache.
	Credentials CredentialRepository

	db *DB
}

// NewClientStorages opens the sqlite database named by cfg.DSN (creating the
// file when needed), applies pending migrations and wires the repositories.
// Tokens are sealed with cfg.Key when it is set.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	sealer, err := crypto.NewSealer(cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("create token sealer: %w", err)
	}

	db, err := NewConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Credentials: NewCredentialRepository(db, sealer, logger),
		db:          db,
	}, nil
}

// Close releases the underlying database handle.
func (s *ClientStorages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
