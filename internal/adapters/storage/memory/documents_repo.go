package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/juju/errors"

	"shelter-services/internal/domain/crud"
)

// document guarda el registro serializado (copia aislada) y una identidad interna
// distinta del id externo, igual que _id en Mongo o uid en Postgres.
type document struct {
	uid  string
	body []byte
}

type documentRepo[T any] struct {
	mu         sync.RWMutex
	collection string
	byID       map[int64]document
}

func NewRepo[T any](collection string) crud.Repository[T] {
	return &documentRepo[T]{
		collection: collection,
		byID:       make(map[int64]document),
	}
}

func (r *documentRepo[T]) Insert(ctx context.Context, id int64, rec T) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return errors.Annotatef(err, "encoding %s document", r.collection)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; exists {
		return errors.AlreadyExistsf("%s %d", r.collection, id)
	}
	r.byID[id] = document{uid: uuid.NewString(), body: body}
	return nil
}

func (r *documentRepo[T]) List(ctx context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	// Orden estable por id (solo para consistencia en dev)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		var rec T
		if err := json.Unmarshal(r.byID[id].body, &rec); err != nil {
			return nil, errors.Annotatef(err, "decoding %s %d", r.collection, id)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *documentRepo[T]) Get(ctx context.Context, id int64) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rec T
	doc, ok := r.byID[id]
	if !ok {
		return rec, errors.NotFoundf("%s %d", r.collection, id)
	}
	if err := json.Unmarshal(doc.body, &rec); err != nil {
		return rec, errors.Annotatef(err, "decoding %s %d", r.collection, id)
	}
	return rec, nil
}

func (r *documentRepo[T]) Update(ctx context.Context, id int64, rec T) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return errors.Annotatef(err, "encoding %s document", r.collection)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.byID[id]
	if !ok {
		return errors.NotFoundf("%s %d", r.collection, id)
	}
	doc.body = body
	r.byID[id] = doc
	return nil
}

func (r *documentRepo[T]) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return errors.NotFoundf("%s %d", r.collection, id)
	}
	delete(r.byID, id)
	return nil
}
