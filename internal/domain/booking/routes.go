package booking

import (
	"github.com/go-chi/chi/v5"

	"shelter-services/internal/domain/crud"
)

type Services struct {
	Reservations *crud.Service[Reservation, *Reservation]
	Cities       *crud.Service[City, *City]
	Classes      *crud.Service[Class, *Class]
}

func RegisterRoutes(r chi.Router, s Services) {
	crud.RegisterRoutes(r, s.Reservations, nil)
	crud.RegisterRoutes(r, s.Cities, nil)
	crud.RegisterRoutes(r, s.Classes, nil)
}
