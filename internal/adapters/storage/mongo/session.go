package mongo

import (
	"time"

	"github.com/juju/errors"
	"github.com/juju/mgo/v3"
)

// Store agrupa la sesión raíz y la base a usar. Cada operación trabaja
// sobre una copia de la sesión (pool de sockets de mgo).
type Store struct {
	session *mgo.Session
	dbName  string
}

// Dial conecta a Mongo (p.ej. "mongodb://127.0.0.1:27017") y usa la base dbName.
func Dial(url, dbName string) (*Store, error) {
	session, err := mgo.DialWithTimeout(url, 5*time.Second)
	if err != nil {
		return nil, errors.Annotatef(err, "dialing mongo %s", url)
	}
	session.SetMode(mgo.Strong, true)
	session.SetSafe(&mgo.Safe{WMode: "majority"})

	return &Store{session: session, dbName: dbName}, nil
}

func (s *Store) Close() {
	s.session.Close()
}

// with ejecuta fn con una colección sobre una sesión copiada.
func (s *Store) with(collection string, fn func(c *mgo.Collection) error) error {
	session := s.session.Copy()
	defer session.Close()

	return fn(session.DB(s.dbName).C(collection))
}

// EnsureIndexes crea el índice único sobre el id externo de cada colección.
func (s *Store) EnsureIndexes(collections ...string) error {
	for _, name := range collections {
		err := s.with(name, func(c *mgo.Collection) error {
			return c.EnsureIndex(mgo.Index{
				Key:    []string{"id"},
				Unique: true,
			})
		})
		if err != nil {
			return errors.Annotatef(err, "indexing %s", name)
		}
	}
	return nil
}
