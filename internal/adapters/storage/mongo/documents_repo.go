package mongo

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/mgo/v3"
	"github.com/juju/mgo/v3/bson"

	"shelter-services/internal/domain/crud"
)

// DocumentsRepo: una colección por recurso. _id lo asigna Mongo (identidad interna);
// las búsquedas van siempre por el campo id.
type DocumentsRepo[T any] struct {
	store      *Store
	collection string
}

func NewDocumentsRepo[T any](store *Store, collection string) *DocumentsRepo[T] {
	return &DocumentsRepo[T]{store: store, collection: collection}
}

var _ crud.Repository[struct{}] = (*DocumentsRepo[struct{}])(nil)

func (r *DocumentsRepo[T]) Insert(ctx context.Context, id int64, rec T) error {
	return r.store.with(r.collection, func(c *mgo.Collection) error {
		err := c.Insert(rec)
		if mgo.IsDup(err) {
			return errors.AlreadyExistsf("%s %d", r.collection, id)
		}
		return errors.Trace(err)
	})
}

func (r *DocumentsRepo[T]) List(ctx context.Context) ([]T, error) {
	out := make([]T, 0)
	err := r.store.with(r.collection, func(c *mgo.Collection) error {
		return c.Find(nil).Select(bson.M{"_id": 0}).Sort("id").All(&out)
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return out, nil
}

func (r *DocumentsRepo[T]) Get(ctx context.Context, id int64) (T, error) {
	var rec T
	err := r.store.with(r.collection, func(c *mgo.Collection) error {
		return c.Find(bson.M{"id": id}).Select(bson.M{"_id": 0}).One(&rec)
	})
	if err == mgo.ErrNotFound {
		return rec, errors.NotFoundf("%s %d", r.collection, id)
	}
	return rec, errors.Trace(err)
}

func (r *DocumentsRepo[T]) Update(ctx context.Context, id int64, rec T) error {
	err := r.store.with(r.collection, func(c *mgo.Collection) error {
		// reemplazo completo; _id se conserva
		return c.Update(bson.M{"id": id}, rec)
	})
	if err == mgo.ErrNotFound {
		return errors.NotFoundf("%s %d", r.collection, id)
	}
	return errors.Trace(err)
}

func (r *DocumentsRepo[T]) Delete(ctx context.Context, id int64) error {
	err := r.store.with(r.collection, func(c *mgo.Collection) error {
		return c.Remove(bson.M{"id": id})
	})
	if err == mgo.ErrNotFound {
		return errors.NotFoundf("%s %d", r.collection, id)
	}
	return errors.Trace(err)
}
