package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"

	"shelter-services/internal/domain/crud"
)

// DocumentsRepo guarda registros como JSONB en la tabla documents,
// particionados por colección e indexados por el id externo.
type DocumentsRepo[T any] struct {
	db         *sql.DB
	collection string
	now        func() time.Time
}

func NewDocumentsRepo[T any](db *sql.DB, collection string) *DocumentsRepo[T] {
	return &DocumentsRepo[T]{db: db, collection: collection, now: time.Now}
}

var _ crud.Repository[struct{}] = (*DocumentsRepo[struct{}])(nil)

func (r *DocumentsRepo[T]) Insert(ctx context.Context, id int64, rec T) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return errors.Annotatef(err, "encoding %s document", r.collection)
	}

	now := r.now().UTC()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO documents (uid, collection, id, body, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		uuid.NewString(),
		r.collection,
		id,
		body,
		now,
		now,
	)
	return errors.Trace(err)
}

func (r *DocumentsRepo[T]) List(ctx context.Context) ([]T, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT body
		FROM documents
		WHERE collection = $1
		ORDER BY id ASC
	`, r.collection)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, errors.Trace(err)
		}

		var rec T
		if err := json.Unmarshal(body, &rec); err != nil {
			return nil, errors.Annotatef(err, "decoding %s document", r.collection)
		}
		out = append(out, rec)
	}

	return out, errors.Trace(rows.Err())
}

func (r *DocumentsRepo[T]) Get(ctx context.Context, id int64) (T, error) {
	var rec T

	var body []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT body
		FROM documents
		WHERE collection = $1 AND id = $2
	`, r.collection, id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, errors.NotFoundf("%s %d", r.collection, id)
		}
		return rec, errors.Trace(err)
	}

	if err := json.Unmarshal(body, &rec); err != nil {
		return rec, errors.Annotatef(err, "decoding %s %d", r.collection, id)
	}
	return rec, nil
}

func (r *DocumentsRepo[T]) Update(ctx context.Context, id int64, rec T) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return errors.Annotatef(err, "encoding %s document", r.collection)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE documents
		SET
			body = $3,
			updated_at = $4
		WHERE collection = $1 AND id = $2
	`,
		r.collection,
		id,
		body,
		r.now().UTC(),
	)
	if err != nil {
		return errors.Trace(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errors.NotFoundf("%s %d", r.collection, id)
	}
	return nil
}

func (r *DocumentsRepo[T]) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM documents
		WHERE collection = $1 AND id = $2
	`, r.collection, id)
	if err != nil {
		return errors.Trace(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errors.NotFoundf("%s %d", r.collection, id)
	}
	return nil
}
