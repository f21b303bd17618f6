package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/platform/apperr"
)

type appointmentRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment
}

func NewAppointmentRepo() appointments.Repository {
	return &appointmentRepo{
		byID: make(map[string]appointments.Appointment),
	}
}

// slotTaken equivale al índice único parcial de postgres:
// (veterinarian_id, date, start_time) WHERE status <> 'CANCELLED'.
// Se llama con el lock tomado.
func (r *appointmentRepo) slotTaken(vetID string, date time.Time, start, excludeID string) bool {
	for _, o := range r.byID {
		if o.ID == excludeID || o.Status == appointments.StatusCancelled {
			continue
		}
		if o.VeterinarianID == vetID && o.Date.Equal(date) && o.StartTime == start {
			return true
		}
	}
	return false
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return apperr.ErrDuplicate
	}
	if a.Status != appointments.StatusCancelled && r.slotTaken(a.VeterinarianID, a.Date, a.StartTime, a.ID) {
		return apperr.ErrDuplicate
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return apperr.ErrNoRows
	}
	if a.Status != appointments.StatusCancelled && r.slotTaken(a.VeterinarianID, a.Date, a.StartTime, a.ID) {
		return apperr.ErrDuplicate
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, apperr.ErrNoRows
	}
	return a, nil
}

func (r *appointmentRepo) List(ctx context.Context, f appointments.Filter) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var petSet map[string]struct{}
	if len(f.PetIDs) > 0 {
		petSet = make(map[string]struct{}, len(f.PetIDs))
		for _, id := range f.PetIDs {
			petSet[id] = struct{}{}
		}
	}

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if f.PetID != "" && a.PetID != f.PetID {
			continue
		}
		if petSet != nil {
			if _, ok := petSet[a.PetID]; !ok {
				continue
			}
		}
		if f.VeterinarianID != "" && a.VeterinarianID != f.VeterinarianID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Date != nil && !a.Date.Equal(*f.Date) {
			continue
		}
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.Date != nil {
			return out[i].StartTime < out[j].StartTime
		}
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].StartTime > out[j].StartTime
	})
	return out, nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return apperr.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *appointmentRepo) SlotTaken(ctx context.Context, veterinarianID string, date time.Time, startTime, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.slotTaken(veterinarianID, date, startTime, excludeID), nil
}

func (r *appointmentRepo) CountByPet(ctx context.Context, petID string) (int, error) {
	return r.count(func(a appointments.Appointment) bool { return a.PetID == petID }), nil
}

func (r *appointmentRepo) CountByServiceType(ctx context.Context, serviceTypeID string) (int, error) {
	return r.count(func(a appointments.Appointment) bool { return a.ServiceTypeID == serviceTypeID }), nil
}

func (r *appointmentRepo) count(match func(appointments.Appointment) bool) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, a := range r.byID {
		if match(a) {
			n++
		}
	}
	return n
}
