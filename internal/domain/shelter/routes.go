package shelter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shelter-services/internal/domain/crud"
)

type Services struct {
	Animals       *crud.Service[Animal, *Animal]
	Donations     *crud.Service[Donation, *Donation]
	Announcements *crud.Service[Announcement, *Announcement]
}

func RegisterRoutes(r chi.Router, s Services) {
	crud.RegisterRoutes(r, s.Animals, func(ar chi.Router) {
		// Cambiar solo el estado de adopción
		ar.Patch("/{id}", patchAdoptedHandler(s.Animals))
	})
	crud.RegisterRoutes(r, s.Donations, nil)
	crud.RegisterRoutes(r, s.Announcements, nil)
}

// adoptedRequest es el cuerpo del PATCH de animales.
type adoptedRequest struct {
	Adopted *bool `json:"adopted" validate:"required"`
}

// patchAdoptedHandler godoc
// @Summary Marcar adopción
// @Description Cambia únicamente el campo `adopted` del animal y devuelve el registro completo.
// @Tags zivotinje
// @Accept json
// @Produce json
// @Param id path int true "ID externo del animal"
// @Param payload body adoptedRequest true "Nuevo estado de adopción"
// @Success 200 {object} Animal
// @Failure 400 {string} string "adopted requerido / json inválido"
// @Failure 404 {string} string "animal not found"
// @Failure 500 {string} string "error de almacenamiento"
// @Router /zivotinje/{id} [patch]
func patchAdoptedHandler(svc *crud.Service[Animal, *Animal]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := svc.Resource()

		id, err := crud.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, res.Label+" not found", http.StatusNotFound)
			return
		}

		var req adoptedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			crud.WriteError(w, &crud.ValidationError{Resource: res.Label, Invalid: []string{"adopted (expected bool)"}})
			return
		}
		if err := crud.Validate(res, req); err != nil {
			crud.WriteError(w, err)
			return
		}

		value, _ := json.Marshal(*req.Adopted)
		updated, err := svc.PatchField(r.Context(), id, "adopted", value)
		if err != nil {
			crud.WriteError(w, err)
			return
		}

		crud.WriteJSON(w, http.StatusOK, updated)
	}
}
