package crud

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/juju/errors"
)

// RegisterRoutes monta el set CRUD uniforme de un recurso:
//
//	POST   {path}        -> 200 texto de confirmación (+ Location)
//	GET    {path}        -> 200 JSON array
//	GET    {path}/{id}   -> 200 JSON | 404
//	PUT    {path}/{id}   -> 200 JSON actualizado | 404
//	DELETE {path}/{id}   -> 200 texto | 404
//
// extra permite que el dominio agregue rutas propias (p.ej. PATCH de animales).
func RegisterRoutes[T any, P RecordPtr[T]](r chi.Router, svc *Service[T, P], extra func(chi.Router)) {
	h := handlers[T, P]{svc: svc}

	r.Route(svc.res.Path, func(rr chi.Router) {
		rr.Post("/", h.create)
		rr.Get("/", h.list)
		rr.Get("/{id}", h.get)
		rr.Put("/{id}", h.replace)
		rr.Delete("/{id}", h.delete)

		if extra != nil {
			extra(rr)
		}
	})
}

type handlers[T any, P RecordPtr[T]] struct {
	svc *Service[T, P]
}

func (h handlers[T, P]) create(w http.ResponseWriter, r *http.Request) {
	res := h.svc.res

	var in T
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, decodeError(res, err))
		return
	}

	rec, err := h.svc.Create(r.Context(), in)
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", res.Path, P(&rec).GetID()))
	writeText(w, http.StatusOK, res.Saved())
}

func (h handlers[T, P]) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (h handlers[T, P]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rec)
}

func (h handlers[T, P]) replace(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	fields, err := DecodeFields(h.svc.res, r.Body)
	if err != nil {
		WriteError(w, err)
		return
	}

	rec, err := h.svc.Replace(r.Context(), id, fields)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rec)
}

func (h handlers[T, P]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	writeText(w, http.StatusOK, h.svc.res.Deleted())
}

// pathID: un {id} no numérico no puede coincidir con ningún registro => 404.
func (h handlers[T, P]) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := ParseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, h.svc.res.Label+" not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// ParseID interpreta el {id} de la ruta.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, errors.NotValidf("id %q", raw)
	}
	return id, nil
}

// DecodeFields lee un objeto JSON como mapa de campos crudos (para PUT/PATCH parciales).
func DecodeFields(res Resource, body io.Reader) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&fields); err != nil {
		return nil, decodeError(res, err)
	}
	if fields == nil {
		return nil, &ValidationError{Resource: res.Label, Msg: "invalid json"}
	}
	return fields, nil
}

// WriteError traduce la taxonomía de errores a status HTTP:
// ValidationError -> 400, NotFound -> 404, todo lo demás -> 500 con el mensaje subyacente.
func WriteError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// WriteJSON escribe v como JSON con el status dado.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}
