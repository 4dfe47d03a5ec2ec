package postgres

import (
	"context"
	"database/sql"

	"github.com/juju/errors"
)

// schema es idempotente; `api migrate` lo aplica antes del primer arranque.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS counters (
		name TEXT PRIMARY KEY,
		seq  BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS documents (
		uid        UUID PRIMARY KEY,
		collection TEXT NOT NULL,
		id         BIGINT NOT NULL,
		body       JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (collection, id)
	)`,
}

// Migrate crea las tablas de documentos y contadores si no existen.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Annotate(err, "applying schema")
		}
	}
	return nil
}
