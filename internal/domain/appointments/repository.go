package appointments

import (
	"context"
	"time"
)

// Repository devuelve apperr.ErrNoRows / apperr.ErrDuplicate.
// Create/Update deben devolver ErrDuplicate si el slot (veterinario, fecha, hora)
// ya está tomado por una cita no cancelada.
type Repository interface {
	Create(ctx context.Context, a Appointment) error
	Update(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	List(ctx context.Context, f Filter) ([]Appointment, error)
	Delete(ctx context.Context, id string) error

	// SlotTaken ignora canceladas y la cita excludeID ("" = ninguna).
	SlotTaken(ctx context.Context, veterinarianID string, date time.Time, startTime, excludeID string) (bool, error)

	CountByPet(ctx context.Context, petID string) (int, error)
	CountByServiceType(ctx context.Context, serviceTypeID string) (int, error)
}
