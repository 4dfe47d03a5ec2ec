package crud

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Reportar campos con su nombre JSON, que es lo que ve el cliente.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		validate = v
	})
	return validate
}

// RegisterValidation agrega una regla por tag (p.ej. "photourl").
// Llamar desde init() de los paquetes de dominio.
func RegisterValidation(tag string, fn validator.Func) error {
	return validatorInstance().RegisterValidation(tag, fn)
}

// Validate aplica los tags `validate` del registro y traduce las fallas a ValidationError.
func Validate(res Resource, rec any) error {
	err := validatorInstance().Struct(rec)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Resource: res.Label, Msg: err.Error()}
	}

	verr := &ValidationError{Resource: res.Label}
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			verr.Missing = append(verr.Missing, fe.Field())
		default:
			verr.Invalid = append(verr.Invalid, fe.Field()+" ("+fe.Tag()+")")
		}
	}
	return verr
}

// decodeError traduce errores de encoding/json en ValidationError.
func decodeError(res Resource, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &ValidationError{
			Resource: res.Label,
			Invalid:  []string{typeErr.Field + " (expected " + typeErr.Type.String() + ")"},
		}
	}
	if errors.Is(err, errors.NotValid) {
		return &ValidationError{Resource: res.Label, Msg: res.Label + ": " + err.Error()}
	}
	return &ValidationError{Resource: res.Label, Msg: "invalid json"}
}
