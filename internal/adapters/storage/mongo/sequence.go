package mongo

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/mgo/v3"
	"github.com/juju/mgo/v3/bson"
)

const countersCollection = "counters"

type counterDoc struct {
	Name string `bson:"_id"`
	Seq  int64  `bson:"seq"`
}

// Sequence implementa el Sequence Store con findAndModify:
// {_id: name} + {$inc: {seq: 1}}, upsert, devolviendo el documento nuevo.
type Sequence struct {
	store *Store
}

func NewSequence(store *Store) *Sequence {
	return &Sequence{store: store}
}

func (s *Sequence) Next(ctx context.Context, name string) (int64, error) {
	v, err := s.next(name)
	if mgo.IsDup(err) {
		// Dos upserts simultáneos sobre un contador nuevo: uno pierde con
		// duplicate key. El documento ya existe, así que el reintento incrementa.
		v, err = s.next(name)
	}
	if err != nil {
		return 0, errors.Annotatef(err, "incrementing counter %q", name)
	}
	return v, nil
}

func (s *Sequence) next(name string) (int64, error) {
	var doc counterDoc
	err := s.store.with(countersCollection, func(c *mgo.Collection) error {
		_, err := c.FindId(name).Apply(mgo.Change{
			Update:    bson.M{"$inc": bson.M{"seq": 1}},
			Upsert:    true,
			ReturnNew: true,
		}, &doc)
		return err
	})
	return doc.Seq, err
}
