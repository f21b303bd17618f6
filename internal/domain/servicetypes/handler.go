package servicetypes

import (
	"net/http"
	"time"

	"vet-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/service-types", func(sr chi.Router) {
		sr.Post("/", createHandler(svc))
		sr.Get("/", listHandler(svc))
		sr.Get("/{serviceTypeID}", getHandler(svc))
		sr.Patch("/{serviceTypeID}", updateHandler(svc))
		sr.Patch("/{serviceTypeID}/activate", setActiveHandler(svc, true))
		sr.Patch("/{serviceTypeID}/deactivate", setActiveHandler(svc, false))
		sr.Delete("/{serviceTypeID}", deleteHandler(svc))
	})
}

type createRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

type updateRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes"`
	Price           *float64 `json:"price"`
}

type serviceTypeResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, "invalid json")
			return
		}
		st, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusCreated, "service type created", toResponse(st))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
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
		out := make([]serviceTypeResponse, 0, len(items))
		for _, st := range items {
			out = append(out, toResponse(st))
		}
		httpx.OK(w, http.StatusOK, "service types", out)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.GetByID(r.Context(), chi.URLParam(r, "serviceTypeID"))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "service type", toResponse(st))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, "invalid json")
			return
		}
		st, err := svc.Update(r.Context(), chi.URLParam(r, "serviceTypeID"), UpdateInput(req))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "service type updated", toResponse(st))
	}
}

func setActiveHandler(svc *Service, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "serviceTypeID")
		var (
			st  ServiceType
			err error
		)
		if active {
			st, err = svc.Activate(r.Context(), id)
		} else {
			st, err = svc.Deactivate(r.Context(), id)
		}
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "service type updated", toResponse(st))
	}
}

// deleteHandler godoc
// @Summary Eliminar tipo de servicio
// @Description Borrado físico. Falla con 400 si hay citas que lo referencian.
// @Tags service-types
// @Produce json
// @Param serviceTypeID path string true "ID del tipo de servicio"
// @Success 200 {object} httpx.Result
// @Failure 400 {object} httpx.Result "referenciado por citas"
// @Failure 404 {object} httpx.Result "service type not found"
// @Router /service-types/{serviceTypeID} [delete]
func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "serviceTypeID")); err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "service type deleted", nil)
	}
}

func toResponse(st ServiceType) serviceTypeResponse {
	return serviceTypeResponse{
		ID:              st.ID,
		Name:            st.Name,
		Description:     st.Description,
		DurationMinutes: st.DurationMinutes,
		Price:           st.Price,
		Active:          st.Active,
		CreatedAt:       st.CreatedAt,
		UpdatedAt:       st.UpdatedAt,
	}
}
