package appointments

import (
	"context"
	"net/http"
	"time"

	"vet-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc))
		ar.Get("/", listAppointmentsHandler(svc))

		ar.Get("/owner/{ownerID}", listByOwnerHandler(svc))
		ar.Get("/pet/{petID}", listByPetHandler(svc))
		ar.Get("/veterinarian/{vetID}", listByVeterinarianHandler(svc))
		ar.Get("/status/{status}", listByStatusHandler(svc))
		ar.Get("/date/{date}", listByDateHandler(svc))

		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Patch("/{appointmentID}", updateAppointmentHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))

		ar.Patch("/{appointmentID}/cancel", cancelAppointmentHandler(svc))
		ar.Patch("/{appointmentID}/confirm", transitionHandler(svc.Confirm, "appointment confirmed"))
		ar.Patch("/{appointmentID}/start", transitionHandler(svc.Start, "appointment started"))
		ar.Patch("/{appointmentID}/complete", transitionHandler(svc.Complete, "appointment completed"))
	})
}

type createAppointmentRequest struct {
	PetID          string `json:"pet_id"`
	VeterinarianID string `json:"veterinarian_id"`
	Date           string `json:"date"`       // YYYY-MM-DD
	StartTime      string `json:"start_time"` // HH:MM
	EndTime        string `json:"end_time"`
	Status         string `json:"status"`
	Reason         string `json:"reason"`
	Priority       string `json:"priority"`
	Notes          string `json:"notes"`
	ReservationID  string `json:"reservation_id"`
	ServiceTypeID  string `json:"service_type_id"`
}

type updateAppointmentRequest struct {
	PetID          *string `json:"pet_id"`
	VeterinarianID *string `json:"veterinarian_id"`
	Date           *string `json:"date"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"` // "" limpia
	Status         *string `json:"status"`
	Reason         *string `json:"reason"`
	Priority       *string `json:"priority"`
	Notes          *string `json:"notes"`
	ReservationID  *string `json:"reservation_id"`
	ServiceTypeID  *string `json:"service_type_id"`
}

type appointmentResponse struct {
	ID             string    `json:"id"`
	PetID          string    `json:"pet_id"`
	VeterinarianID string    `json:"veterinarian_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time,omitempty"`
	Status         Status    `json:"status"`
	Reason         string    `json:"reason,omitempty"`
	Priority       Priority  `json:"priority"`
	Notes          string    `json:"notes,omitempty"`
	ReservationID  string    `json:"reservation_id,omitempty"`
	ServiceTypeID  string    `json:"service_type_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Pet          *PetRef         `json:"pet,omitempty"`
	Owner        *OwnerRef       `json:"owner,omitempty"`
	Veterinarian *StaffRef       `json:"veterinarian,omitempty"`
	ServiceType  *ServiceTypeRef `json:"service_type,omitempty"`
}

// createAppointmentHandler godoc
// @Summary Agendar cita
// @Description Valida mascota (existe y activa), dueño (existe y activo) y que el slot veterinario/fecha/hora esté libre. Status por defecto SCHEDULED, prioridad por defecto NORMAL. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token"
// @Param payload body createAppointmentRequest true "Datos de la cita; date YYYY-MM-DD, start_time HH:MM"
// @Success 201 {object} httpx.Result{data=appointmentResponse}
// @Failure 400 {object} httpx.Result "datos inválidos / mascota o dueño inactivo"
// @Failure 404 {object} httpx.Result "pet not found / owner not found"
// @Failure 409 {object} httpx.Result "slot already booked"
// @Router /appointments [post]
func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAppointmentRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, "invalid json")
			return
		}

		d, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusCreated, "appointment created", toAppointmentResponse(d))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar citas
// @Description Todas las citas, ordenadas por fecha desc y hora desc.
// @Tags appointments
// @Produce json
// @Success 200 {object} httpx.Result{data=[]appointmentResponse}
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return listHandler(func(r *http.Request) ([]Detail, error) {
		return svc.List(r.Context())
	})
}

// listByOwnerHandler godoc
// @Summary Citas de un dueño
// @Tags appointments
// @Produce json
// @Param ownerID path string true "ID del cliente"
// @Success 200 {object} httpx.Result{data=[]appointmentResponse}
// @Failure 404 {object} httpx.Result "owner not found"
// @Router /appointments/owner/{ownerID} [get]
func listByOwnerHandler(svc *Service) http.HandlerFunc {
	return listHandler(func(r *http.Request) ([]Detail, error) {
		return svc.ListByOwner(r.Context(), chi.URLParam(r, "ownerID"))
	})
}

// listByPetHandler godoc
// @Summary Citas de una mascota
// @Tags appointments
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} httpx.Result{data=[]appointmentResponse}
// @Failure 404 {object} httpx.Result "pet not found"
// @Router /appointments/pet/{petID} [get]
func listByPetHandler(svc *Service) http.HandlerFunc {
	return listHandler(func(r *http.Request) ([]Detail, error) {
		return svc.ListByPet(r.Context(), chi.URLParam(r, "petID"))
	})
}

// listByVeterinarianHandler godoc
// @Summary Citas de un veterinario
// @Tags appointments
// @Produce json
// @Param vetID path string true "ID del veterinario (staff)"
// @Success 200 {object} httpx.Result{data=[]appointmentResponse}
// @Router /appointments/veterinarian/{vetID} [get]
func listByVeterinarianHandler(svc *Service) http.HandlerFunc {
	return listHandler(func(r *http.Request) ([]Detail, error) {
		return svc.ListByVeterinarian(r.Context(), chi.URLParam(r, "vetID"))
	})
}

// listByStatusHandler godoc
// @Summary Citas por estado
// @Description Acepta SCHEDULED, CONFIRMED, IN_PROGRESS, COMPLETED, CANCELLED o sus alias PROGRAMADA, CONFIRMADA, EN_CURSO, COMPLETADA, CANCELADA (sin importar mayúsculas).
// @Tags appointments
// @Produce json
// @Param status path string true "Estado"
// @Success 200 {object} httpx.Result{data=[]appointmentResponse}
// @Failure 400 {object} httpx.Result "invalid status"
// @Router /appointments/status/{status} [get]
func listByStatusHandler(svc *Service) http.HandlerFunc {
	return listHandler(func(r *http.Request) ([]Detail, error) {
		return svc.ListByStatus(r.Context(), chi.URLParam(r, "status"))
	})
}

// listByDateHandler godoc
// @Summary Agenda del día
// @Description Citas de una fecha ordenadas por hora de inicio ascendente.
// @Tags appointments
// @Produce json
// @Param date path string true "Fecha YYYY-MM-DD"
// @Success 200 {object} httpx.Result{data=[]appointmentResponse}
// @Failure 400 {object} httpx.Result "fecha mal formada"
// @Router /appointments/date/{date} [get]
func listByDateHandler(svc *Service) http.HandlerFunc {
	return listHandler(func(r *http.Request) ([]Detail, error) {
		return svc.ListByDate(r.Context(), chi.URLParam(r, "date"))
	})
}

// getAppointmentHandler godoc
// @Summary Obtener cita
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} httpx.Result{data=appointmentResponse}
// @Failure 404 {object} httpx.Result "appointment not found"
// @Router /appointments/{appointmentID} [get]
func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "appointment", toAppointmentResponse(d))
	}
}

// updateAppointmentHandler godoc
// @Summary Actualizar cita
// @Description PATCH parcial. Si cambia veterinario, fecha u hora (y el estado resultante no es CANCELLED) se vuelve a verificar el slot. El estado se puede fijar libremente.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Param payload body updateAppointmentRequest true "Campos a modificar"
// @Success 200 {object} httpx.Result{data=appointmentResponse}
// @Failure 400 {object} httpx.Result
// @Failure 404 {object} httpx.Result
// @Failure 409 {object} httpx.Result "slot already booked"
// @Router /appointments/{appointmentID} [patch]
func updateAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAppointmentRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.BadRequest(w, "invalid json")
			return
		}

		d, err := svc.Update(r.Context(), chi.URLParam(r, "appointmentID"), UpdateInput(req))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "appointment updated", toAppointmentResponse(d))
	}
}

// cancelAppointmentHandler godoc
// @Summary Cancelar cita
// @Description SCHEDULED, CONFIRMED o IN_PROGRESS pasan a CANCELLED. Si viene reason, el motivo queda como "CANCELLED - <reason>".
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Param reason query string false "Motivo de cancelación"
// @Success 200 {object} httpx.Result{data=appointmentResponse}
// @Failure 400 {object} httpx.Result "cita completada o ya cancelada"
// @Failure 404 {object} httpx.Result
// @Router /appointments/{appointmentID}/cancel [patch]
func cancelAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Cancel(r.Context(), chi.URLParam(r, "appointmentID"), r.URL.Query().Get("reason"))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "appointment cancelled", toAppointmentResponse(d))
	}
}

// transitionHandler cubre confirm (SCHEDULED→CONFIRMED), start (CONFIRMED→IN_PROGRESS)
// y complete (IN_PROGRESS→COMPLETED). Cualquier otro origen => 400.
func transitionHandler(fn func(ctx context.Context, id string) (Detail, error), msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := fn(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, msg, toAppointmentResponse(d))
	}
}

// deleteAppointmentHandler godoc
// @Summary Eliminar cita (físico)
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} httpx.Result
// @Failure 404 {object} httpx.Result
// @Router /appointments/{appointmentID} [delete]
func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "appointmentID")); err != nil {
			httpx.Error(w, r, err)
			return
		}
		httpx.OK(w, http.StatusOK, "appointment deleted", nil)
	}
}

func listHandler(fetch func(r *http.Request) ([]Detail, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := fetch(r)
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		out := make([]appointmentResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toAppointmentResponse(d))
		}
		httpx.OK(w, http.StatusOK, "appointments", out)
	}
}

func toAppointmentResponse(d Detail) appointmentResponse {
	return appointmentResponse{
		ID:             d.ID,
		PetID:          d.PetID,
		VeterinarianID: d.VeterinarianID,
		Date:           d.Date.Format(dateLayout),
		StartTime:      d.StartTime,
		EndTime:        d.EndTime,
		Status:         d.Status,
		Reason:         d.Reason,
		Priority:       d.Priority,
		Notes:          d.Notes,
		ReservationID:  d.ReservationID,
		ServiceTypeID:  d.ServiceTypeID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		Pet:            d.Pet,
		Owner:          d.Owner,
		Veterinarian:   d.Veterinarian,
		ServiceType:    d.ServiceType,
	}
}
