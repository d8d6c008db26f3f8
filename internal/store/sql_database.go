package store

import (
	"database/sql"

	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/migrations"
)

const sqliteDialect = "sqlite3"

// DB is the sqlite handle of the credential cache.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded goose migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, sqliteDialect)
}
