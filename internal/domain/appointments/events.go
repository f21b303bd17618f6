package appointments

import (
	"context"
	"time"

	"vet-clinic/internal/ports/events"

	"github.com/google/uuid"
)

const (
	EventCreated       = "appointment.created"
	EventUpdated       = "appointment.updated"
	EventCancelled     = "appointment.cancelled"
	EventStatusChanged = "appointment.status_changed"
	EventDeleted       = "appointment.deleted"
)

// EventPayload es el snapshot que viaja al broker.
type EventPayload struct {
	AppointmentID  string    `json:"appointment_id"`
	PetID          string    `json:"pet_id"`
	VeterinarianID string    `json:"veterinarian_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time,omitempty"`
	Status         Status    `json:"status"`
	Priority       Priority  `json:"priority"`
	Reason         string    `json:"reason,omitempty"`
	ServiceTypeID  string    `json:"service_type_id,omitempty"`
	ReservationID  string    `json:"reservation_id,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// publish es best-effort: un error del broker se loguea y no falla la operación.
func (s *Service) publish(ctx context.Context, eventType string, a Appointment) {
	evt := events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Key:        a.ID,
		OccurredAt: s.now().UTC(),
		Payload: EventPayload{
			AppointmentID:  a.ID,
			PetID:          a.PetID,
			VeterinarianID: a.VeterinarianID,
			Date:           a.Date.Format(dateLayout),
			StartTime:      a.StartTime,
			EndTime:        a.EndTime,
			Status:         a.Status,
			Priority:       a.Priority,
			Reason:         a.Reason,
			ServiceTypeID:  a.ServiceTypeID,
			ReservationID:  a.ReservationID,
			UpdatedAt:      a.UpdatedAt,
		},
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.Warn().Err(err).
			Str("event_type", eventType).
			Str("appointment_id", a.ID).
			Msg("publish appointment event failed")
	}
}
