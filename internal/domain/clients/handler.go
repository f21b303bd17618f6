package clients

import (
	"net/http"
	"time"

	"vet-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/clients", func(cr chi.Router) {
		cr.Post("/", createClientHandler(svc))
		cr.Get("/", listClientsHandler(svc))
		cr.Get("/{clientID}", getClientHandler(svc))
		cr.Patch("/{clientID}", updateClientHandler(svc))
		cr.Patch("/{clientID}/activate", setActiveHandler(svc, true))
		cr.Patch("/{clientID}/deactivate", setActiveHandler(svc, false))
		cr.Delete("/{clientID}", deleteClientHandler(svc))
	})
}

type createClientRequest struct {
	FullName   string `json:"full_name"`
	DocumentID string `json:"document_id"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

type updateClientRequest struct {
	FullName   *string `json:"full_name"`
	DocumentID *string `json:"document_id"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
}

type clientResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	DocumentID string    `json:"document_id"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// createClientHandler godoc
// @Summary Registrar cliente
// @Tags clients
// @Accept json
// @Produce json
// @Param payload body createClientRequest true "Datos del cliente"
// @Success 201 {object} httpx.Result{data=clientResponse}
// @Failure 400 {object} httpx.Result
// @Failure 409 {object} httpx.Result "documento o email duplicado"
// @Router /clients [post]
func createClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createClientRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, "invalid json")
			return
		}

		c, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusCreated, "client created", toClientResponse(c))
	}
}

func listClientsHandler(svc *Service) http.HandlerFunc {
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

		out := make([]clientResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toClientResponse(c))
		}
		httpx.OK(w, http.StatusOK, "clients", out)
	}
}

func getClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "clientID"))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "client", toClientResponse(c))
	}
}

func updateClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateClientRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, "invalid json")
			return
		}

		c, err := svc.Update(r.Context(), chi.URLParam(r, "clientID"), UpdateInput(req))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "client updated", toClientResponse(c))
	}
}

func setActiveHandler(svc *Service, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "clientID")

		var (
			c   Client
			err error
			msg string
		)
		if active {
			c, err = svc.Activate(r.Context(), id)
			msg = "client activated"
		} else {
			c, err = svc.Deactivate(r.Context(), id)
			msg = "client deactivated"
		}
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, msg, toClientResponse(c))
	}
}

func deleteClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "clientID")); err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "client deleted", nil)
	}
}

func toClientResponse(c Client) clientResponse {
	return clientResponse{
		ID:         c.ID,
		FullName:   c.FullName,
		DocumentID: c.DocumentID,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		Active:     c.Active,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
