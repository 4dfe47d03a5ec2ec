package redis

import (
	"context"
	"time"

	"github.com/juju/errors"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "counters:"

// incrementer es lo único que el Sequence Store necesita del cliente.
type incrementer interface {
	Incr(ctx context.Context, key string) *goredis.IntCmd
}

// Sequence usa INCR, atómico en Redis: la clave ausente arranca en 0 y devuelve 1.
type Sequence struct {
	client incrementer
}

func NewSequence(client incrementer) *Sequence {
	return &Sequence{client: client}
}

func (s *Sequence) Next(ctx context.Context, name string) (int64, error) {
	v, err := s.client.Incr(ctx, keyPrefix+name).Result()
	if err != nil {
		return 0, errors.Annotatef(err, "incrementing counter %q", name)
	}
	return v, nil
}

// Dial crea el cliente y verifica la conexión.
func Dial(ctx context.Context, addr string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Annotatef(err, "pinging redis %s", addr)
	}
	return client, nil
}
