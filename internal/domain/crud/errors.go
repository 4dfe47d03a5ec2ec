package crud

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
)

// ValidationError: el cliente mandó un cuerpo inválido. Se detecta antes de mutar nada.
type ValidationError struct {
	Resource string
	Missing  []string
	Invalid  []string
	Msg      string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}

	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, ", "))
	}
	if len(parts) == 0 {
		return e.Resource + ": invalid input"
	}
	return e.Resource + ": " + strings.Join(parts, "; ")
}

// StorageError envuelve cualquier falla del backend. El mensaje original se expone al cliente.
type StorageError struct {
	Resource string
	Op       string
	Err      error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Resource, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsNotFound reporta si err (o algo que envuelve) es un NotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, errors.NotFound)
}

// IsValidation reporta si err es un ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsStorage reporta si err es un StorageError.
func IsStorage(err error) bool {
	var serr *StorageError
	return errors.As(err, &serr)
}
