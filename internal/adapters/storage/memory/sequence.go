package memory

import (
	"context"
	"sync"
)

// Sequence es un Sequence Store en proceso. Sirve para dev y tests;
// con varias instancias del servicio hay que usar postgres, mongo o redis.
type Sequence struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewSequence() *Sequence {
	return &Sequence{counters: make(map[string]int64)}
}

func (s *Sequence) Next(ctx context.Context, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[name]++
	return s.counters[name], nil
}
