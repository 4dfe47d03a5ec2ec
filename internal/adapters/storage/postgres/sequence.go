package postgres

import (
	"context"
	"database/sql"

	"github.com/juju/errors"
)

// Sequence implementa el Sequence Store sobre la tabla counters.
// El upsert con RETURNING es un único statement: Postgres serializa las
// actualizaciones concurrentes de la misma fila, así que no hay valores repetidos.
type Sequence struct {
	db *sql.DB
}

func NewSequence(db *sql.DB) *Sequence {
	return &Sequence{db: db}
}

func (s *Sequence) Next(ctx context.Context, name string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO counters (name, seq) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
		RETURNING seq
	`, name).Scan(&seq)
	if err != nil {
		return 0, errors.Annotatef(err, "incrementing counter %q", name)
	}
	return seq, nil
}
