package shelter

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"shelter-services/internal/domain/crud"
	"shelter-services/internal/domain/sequence"
)

var (
	AnimalResource = crud.Resource{
		Collection: "animals",
		Path:       "/zivotinje",
		Label:      "animal",
		Counter:    sequence.AnimalID,
	}
	DonationResource = crud.Resource{
		Collection: "donations",
		Path:       "/donacije",
		Label:      "donation",
		Counter:    sequence.DonationID,
	}
	AnnouncementResource = crud.Resource{
		Collection: "announcements",
		Path:       "/obavijesti",
		Label:      "announcement",
		Counter:    sequence.AnnouncementID,
	}
)

// Collections lista las colecciones del servicio (índices, migraciones).
func Collections() []string {
	return []string{
		AnimalResource.Collection,
		DonationResource.Collection,
		AnnouncementResource.Collection,
	}
}

// photoURLPattern acepta http(s):// y chrome:// seguidos de un host no vacío.
var photoURLPattern = regexp.MustCompile(`^(https?|chrome)://[^\s$.?#].[^\s]*$`)

func init() {
	if err := crud.RegisterValidation("photourl", func(fl validator.FieldLevel) bool {
		return photoURLPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// Animal es una ficha de ingreso al refugio.
// Requeridos: name, sex, age (age 0 cuenta como ausente).
type Animal struct {
	ID              int64      `json:"id" bson:"id"`
	Name            string     `json:"name" bson:"name" validate:"required"`
	Species         string     `json:"species,omitempty" bson:"species,omitempty"`
	Sex             string     `json:"sex" bson:"sex" validate:"required"`
	Age             float64    `json:"age" bson:"age" validate:"required,gte=0"`
	Breed           string     `json:"breed,omitempty" bson:"breed,omitempty"`
	Adopted         *bool      `json:"adopted,omitempty" bson:"adopted,omitempty"`
	PhotoURL        string     `json:"photoUrl,omitempty" bson:"photoUrl,omitempty" validate:"omitempty,photourl"`
	HasChip         *bool      `json:"hasChip,omitempty" bson:"hasChip,omitempty"`
	LastCheckupDate *crud.Date `json:"lastCheckupDate,omitempty" bson:"lastCheckupDate,omitempty"`
	Note            string     `json:"note,omitempty" bson:"note,omitempty"`
}

func (a Animal) GetID() int64    { return a.ID }
func (a *Animal) SetID(id int64) { a.ID = id }

// Donation: solo type es requerido.
type Donation struct {
	ID          int64    `json:"id" bson:"id"`
	Category    string   `json:"category,omitempty" bson:"category,omitempty"`
	Type        string   `json:"type" bson:"type" validate:"required"`
	Amount      *float64 `json:"amount,omitempty" bson:"amount,omitempty" validate:"omitempty,gte=0"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
}

func (d Donation) GetID() int64    { return d.ID }
func (d *Donation) SetID(id int64) { d.ID = id }

// Announcement: solo title es requerido.
type Announcement struct {
	ID        int64      `json:"id" bson:"id"`
	Title     string     `json:"title" bson:"title" validate:"required"`
	Date      *crud.Date `json:"date,omitempty" bson:"date,omitempty"`
	Text      string     `json:"text,omitempty" bson:"text,omitempty"`
	Important *bool      `json:"important,omitempty" bson:"important,omitempty"`
}

func (a Announcement) GetID() int64    { return a.ID }
func (a *Announcement) SetID(id int64) { a.ID = id }
