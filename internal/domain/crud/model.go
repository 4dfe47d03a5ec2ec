package crud

import "context"

// Resource describe un tipo de registro expuesto como colección REST.
type Resource struct {
	// Collection es el nombre de la colección/tabla lógica ("animals").
	Collection string
	// Path es el segmento HTTP ("/zivotinje").
	Path string
	// Label es el nombre singular usado en mensajes ("animal").
	Label string
	// Counter es el contador del Sequence Store que emite los ids.
	Counter string
}

// Saved es el texto de confirmación de un create.
func (r Resource) Saved() string { return r.Label + " saved" }

// Deleted es el texto de confirmación de un delete.
func (r Resource) Deleted() string { return r.Label + " deleted" }

// Record es un documento con id externo (distinto de la identidad interna del store).
type Record interface {
	GetID() int64
}

// RecordPtr restringe a punteros de registros que aceptan un id asignado.
type RecordPtr[T any] interface {
	*T
	Record
	SetID(id int64)
}

// Repository es una colección plana de documentos indexada por el id externo.
// Get/Update/Delete devuelven un error que satisface errors.Is(err, errors.NotFound)
// (juju/errors) cuando no hay documento con ese id.
type Repository[T any] interface {
	Insert(ctx context.Context, id int64, rec T) error
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Update(ctx context.Context, id int64, rec T) error
	Delete(ctx context.Context, id int64) error
}
