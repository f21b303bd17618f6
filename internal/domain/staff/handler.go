package staff

import (
	"net/http"
	"time"

	"vet-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/staff", func(sr chi.Router) {
		sr.Post("/", createStaffHandler(svc))
		sr.Get("/", listStaffHandler(svc))
		sr.Get("/{staffID}", getStaffHandler(svc))
		sr.Patch("/{staffID}", updateStaffHandler(svc))
		sr.Patch("/{staffID}/activate", setActiveHandler(svc, true))
		sr.Patch("/{staffID}/deactivate", setActiveHandler(svc, false))
	})
}

type createStaffRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type updateStaffRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
}

type staffResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func createStaffHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createStaffRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, "invalid json")
			return
		}
		a, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusCreated, "staff account created", toStaffResponse(a))
	}
}

// listStaffHandler godoc
// @Summary Listar staff
// @Tags staff
// @Produce json
// @Param role query string false "ADMIN | VETERINARIAN | RECEPTIONIST"
// @Param active query bool false "Filtrar por estado"
// @Success 200 {object} httpx.Result{data=[]staffResponse}
// @Failure 400 {object} httpx.Result "rol o filtro inválido"
// @Router /staff [get]
func listStaffHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active, err := httpx.QueryBool(r, "active")
		if err != nil {
			httpx.BadRequest(w, err.Error())
			return
		}
		items, err := svc.List(r.Context(), r.URL.Query().Get("role"), active)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		out := make([]staffResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toStaffResponse(a))
		}
		httpx.OK(w, http.StatusOK, "staff", out)
	}
}

func getStaffHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "staffID"))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "staff account", toStaffResponse(a))
	}
}

func updateStaffHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStaffRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, "invalid json")
			return
		}
		a, err := svc.Update(r.Context(), chi.URLParam(r, "staffID"), UpdateInput(req))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "staff account updated", toStaffResponse(a))
	}
}

func setActiveHandler(svc *Service, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "staffID")
		var (
			a   Account
			err error
		)
		if active {
			a, err = svc.Activate(r.Context(), id)
		} else {
			a, err = svc.Deactivate(r.Context(), id)
		}
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "staff account updated", toStaffResponse(a))
	}
}

func toStaffResponse(a Account) staffResponse {
	return staffResponse{
		ID:        a.ID,
		FullName:  a.FullName,
		Email:     a.Email,
		Role:      a.Role,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
