package booking

import (
	"shelter-services/internal/domain/crud"
	"shelter-services/internal/domain/sequence"
)

var (
	ReservationResource = crud.Resource{
		Collection: "reservations",
		Path:       "/reservations",
		Label:      "reservation",
		Counter:    sequence.ReservationID,
	}
	CityResource = crud.Resource{
		Collection: "cities",
		Path:       "/cities",
		Label:      "city",
		Counter:    sequence.CityID,
	}
	ClassResource = crud.Resource{
		Collection: "classes",
		Path:       "/classes",
		Label:      "class",
		Counter:    sequence.ClassID,
	}
)

func Collections() []string {
	return []string{
		ReservationResource.Collection,
		CityResource.Collection,
		ClassResource.Collection,
	}
}

// Reservation guarda class como texto libre; no se valida contra Class.
type Reservation struct {
	ID        int64      `json:"id" bson:"id"`
	Name      string     `json:"name,omitempty" bson:"name,omitempty"`
	Surname   string     `json:"surname,omitempty" bson:"surname,omitempty"`
	Age       *float64   `json:"age,omitempty" bson:"age,omitempty" validate:"omitempty,gte=0"`
	StartDate *crud.Date `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate   *crud.Date `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Class     string     `json:"class,omitempty" bson:"class,omitempty"`
	Email     string     `json:"email" bson:"email" validate:"required,email"`
}

func (r Reservation) GetID() int64    { return r.ID }
func (r *Reservation) SetID(id int64) { r.ID = id }

type City struct {
	ID      int64  `json:"id" bson:"id"`
	Name    string `json:"name" bson:"name" validate:"required"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

func (c City) GetID() int64    { return c.ID }
func (c *City) SetID(id int64) { c.ID = id }

type Class struct {
	ID   int64  `json:"id" bson:"id"`
	Name string `json:"name" bson:"name" validate:"required"`
}

func (c Class) GetID() int64    { return c.ID }
func (c *Class) SetID(id int64) { c.ID = id }
