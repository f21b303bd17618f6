package appointments

import (
	"fmt"
	"strings"
	"time"
)

// Status: estados de una cita.
//
//	SCHEDULED --confirm--> CONFIRMED --start--> IN_PROGRESS --complete--> COMPLETED
//	SCHEDULED/CONFIRMED/IN_PROGRESS --cancel--> CANCELLED
//
// COMPLETED y CANCELLED son terminales.
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Alias en español aceptados en filtros y payloads.
var statusAliases = map[string]Status{
	"SCHEDULED":   StatusScheduled,
	"PROGRAMADA":  StatusScheduled,
	"CONFIRMED":   StatusConfirmed,
	"CONFIRMADA":  StatusConfirmed,
	"IN_PROGRESS": StatusInProgress,
	"EN_CURSO":    StatusInProgress,
	"COMPLETED":   StatusCompleted,
	"COMPLETADA":  StatusCompleted,
	"CANCELLED":   StatusCancelled,
	"CANCELADA":   StatusCancelled,
}

// ParseStatus es case-insensitive.
func ParseStatus(s string) (Status, bool) {
	st, ok := statusAliases[strings.ToUpper(strings.TrimSpace(s))]
	return st, ok
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo aplica a cancel y a confirm/start/complete.
// El PATCH genérico no pasa por acá.
func (s Status) CanTransitionTo(next Status) bool {
	allowed := map[Status][]Status{
		StatusScheduled:  {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusInProgress, StatusCancelled},
		StatusInProgress: {StatusCompleted, StatusCancelled},
		StatusCompleted:  {},
		StatusCancelled:  {},
	}
	for _, st := range allowed[s] {
		if st == next {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

var priorityAliases = map[string]Priority{
	"LOW":     PriorityLow,
	"BAJA":    PriorityLow,
	"NORMAL":  PriorityNormal,
	"HIGH":    PriorityHigh,
	"ALTA":    PriorityHigh,
	"URGENT":  PriorityUrgent,
	"URGENTE": PriorityUrgent,
}

func ParsePriority(s string) (Priority, bool) {
	p, ok := priorityAliases[strings.ToUpper(strings.TrimSpace(s))]
	return p, ok
}

// Appointment es una cita veterinaria. El dueño no se guarda: se deriva de la mascota.
type Appointment struct {
	ID             string
	PetID          string
	VeterinarianID string

	Date      time.Time // medianoche UTC
	StartTime string    // HH:MM
	EndTime   string    // HH:MM, "" = sin hora de fin

	Status   Status
	Reason   string
	Priority Priority
	Notes    string

	ReservationID string
	ServiceTypeID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter: campos vacíos = sin filtro. PetIDs no vacío filtra por pertenencia.
// Con Date seteado el orden es start_time asc; si no, date desc, start_time desc.
type Filter struct {
	PetID          string
	PetIDs         []string
	VeterinarianID string
	Status         Status
	Date           *time.Time
}

const dateLayout = time.DateOnly

// ParseDate acepta YYYY-MM-DD y devuelve medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD")
	}
	return d.UTC(), nil
}

// ParseClock normaliza H:MM / HH:MM / HH:MM:SS a HH:MM.
func ParseClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("time %q must be HH:MM", s)
}
