package pets

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"vet-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/owner/{ownerID}", listPetsByOwnerHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Patch("/{petID}/activate", setActiveHandler(svc, true))
		pr.Patch("/{petID}/deactivate", setActiveHandler(svc, false))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	Sex       string `json:"sex"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD opcional
	Microchip string `json:"microchip"`
	Notes     string `json:"notes"`
}

type petResponse struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"owner_id"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed"`
	Sex       string     `json:"sex"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Microchip string     `json:"microchip,omitempty"`
	Notes     string     `json:"notes"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	OwnerID   *string `json:"owner_id"`
	Name      *string `json:"name"`
	Species   *string `json:"species"`
	Breed     *string `json:"breed"`
	Sex       *string `json:"sex"`
	BirthDate *string `json:"birth_date"` // YYYY-MM-DD. Para limpiar: enviar null
	Microchip *string `json:"microchip"`
	Notes     *string `json:"notes"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description El dueño (owner_id) debe existir y estar activo.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota; birth_date YYYY-MM-DD"
// @Success 201 {object} httpx.Result{data=petResponse}
// @Failure 400 {object} httpx.Result "datos inválidos / dueño inactivo"
// @Failure 404 {object} httpx.Result "owner not found"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, "invalid json")
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse(time.DateOnly, req.BirthDate)
			if err != nil {
				httpx.BadRequest(w, "birth_date must be YYYY-MM-DD")
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), CreateInput{
			OwnerID:   req.OwnerID,
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Sex:       req.Sex,
			BirthDate: bd,
			Microchip: req.Microchip,
			Notes:     req.Notes,
		})
		if err != nil {
			httpx.Error(w, r, err)
			return
		}

		httpx.OK(w, http.StatusCreated, "pet created", toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active, err := httpx.QueryBool(r, "active")
		if err != nil {
			httpx.BadRequest(w, err.Error())
			return
		}
		items, err := svc.List(r.Context(), ListFilter{Active: active})
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "pets", toPetResponses(items))
	}
}

func listPetsByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOwner(r.Context(), chi.URLParam(r, "ownerID"))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "pets", toPetResponses(items))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "pet", toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar perfil de mascota
// @Description PATCH parcial. "birth_date": null limpia la fecha. Cambiar owner_id re-valida al nuevo dueño.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} httpx.Result{data=petResponse}
// @Failure 400 {object} httpx.Result
// @Failure 404 {object} httpx.Result "pet not found"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Para soportar birth_date: null necesitamos detectar presencia del campo,
		// así que primero decodificamos a map.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			httpx.BadRequest(w, "invalid json")
			return
		}

		var req updatePetRequest
		{
			b, _ := json.Marshal(raw)
			dec := json.NewDecoder(bytes.NewReader(b))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				httpx.BadRequest(w, "invalid json")
				return
			}
		}

		bd := PatchBirthDate{}
		if v, exists := raw["birth_date"]; exists {
			bd.Present = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					httpx.BadRequest(w, "birth_date must be YYYY-MM-DD or null")
					return
				}
				t, err := time.Parse(time.DateOnly, s)
				if err != nil {
					httpx.BadRequest(w, "birth_date must be YYYY-MM-DD or null")
					return
				}
				bd.Value = &t
			}
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), UpdateProfileInput{
			OwnerID:   req.OwnerID,
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Sex:       req.Sex,
			BirthDate: bd,
			Microchip: req.Microchip,
			Notes:     req.Notes,
		})
		if err != nil {
			httpx.Error(w, r, err)
			return
		}

		httpx.OK(w, http.StatusOK, "pet updated", toPetResponse(updated))
	}
}

func setActiveHandler(svc *Service, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "petID")
		var (
			p   Pet
			err error
		)
		if active {
			p, err = svc.Activate(r.Context(), id)
		} else {
			p, err = svc.Deactivate(r.Context(), id)
		}
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "pet updated", toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "pet deleted", nil)
	}
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	return out
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Species:   string(p.Species),
		Breed:     p.Breed,
		Sex:       string(p.Sex),
		BirthDate: p.BirthDate,
		Microchip: p.Microchip,
		Notes:     p.Notes,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
