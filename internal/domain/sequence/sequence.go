package sequence

import (
	"context"
	"strings"

	"github.com/juju/errors"

	"shelter-services/internal/platform/metrics"
)

// Nombres de contadores, uno por tipo de recurso.
const (
	AnimalID       = "animal-id"
	DonationID     = "donation-id"
	AnnouncementID = "announcement-id"
	ReservationID  = "reservation-id"
	CityID         = "city-id"
	ClassID        = "class-id"
)

// Store emite enteros únicos y estrictamente crecientes por nombre de contador.
// Next debe ser un read-modify-write atómico en el backend: si el contador no
// existe se crea con 1, si existe se incrementa en 1; devuelve el valor nuevo.
type Store interface {
	Next(ctx context.Context, name string) (int64, error)
}

// Instrumented envuelve un Store validando el nombre y registrando métricas.
type Instrumented struct {
	next Store
}

func NewInstrumented(s Store) *Instrumented {
	return &Instrumented{next: s}
}

func (s *Instrumented) Next(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.NotValidf("empty counter name")
	}

	v, err := s.next.Next(ctx, name)
	if err != nil {
		return 0, errors.Annotatef(err, "next value for %q", name)
	}

	metrics.RecordSequence(name, v)
	return v, nil
}
