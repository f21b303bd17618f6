package servicetypes

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic/internal/platform/apperr"

	"github.com/google/uuid"
)

const (
	msgNotFound   = "service type not found"
	msgNameExists = "a service type with the same name already exists"
)

type Service struct {
	repo         Repository
	appointments AppointmentCounter
	now          func() time.Time
}

func NewService(repo Repository, appointments AppointmentCounter) *Service {
	return &Service{
		repo:         repo,
		appointments: appointments,
		now:          time.Now,
	}
}

type CreateInput struct {
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (ServiceType, error) {
	st := ServiceType{
		Name:            strings.TrimSpace(in.Name),
		Description:     strings.TrimSpace(in.Description),
		DurationMinutes: in.DurationMinutes,
		Price:           in.Price,
		Active:          true,
	}
	if err := validate(st); err != nil {
		return ServiceType{}, err
	}
	if err := s.ensureUniqueName(ctx, st); err != nil {
		return ServiceType{}, err
	}

	now := s.now()
	st.ID = uuid.NewString()
	st.CreatedAt = now
	st.UpdatedAt = now

	if err := s.repo.Create(ctx, st); err != nil {
		return ServiceType{}, apperr.FromStorage(err, msgNotFound, msgNameExists)
	}
	return st, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (ServiceType, error) {
	if strings.TrimSpace(id) == "" {
		return ServiceType{}, apperr.NotFound(msgNotFound)
	}
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ServiceType{}, apperr.FromStorage(err, msgNotFound, msgNameExists)
	}
	return st, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]ServiceType, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("list service types", err)
	}
	return items, nil
}

type UpdateInput struct {
	Name            *string
	Description     *string
	DurationMinutes *int
	Price           *float64
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (ServiceType, error) {
	st, err := s.GetByID(ctx, id)
	if err != nil {
		return ServiceType{}, err
	}
	if in.Name != nil {
		st.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		st.Description = strings.TrimSpace(*in.Description)
	}
	if in.DurationMinutes != nil {
		st.DurationMinutes = *in.DurationMinutes
	}
	if in.Price != nil {
		st.Price = *in.Price
	}
	if err := validate(st); err != nil {
		return ServiceType{}, err
	}
	if err := s.ensureUniqueName(ctx, st); err != nil {
		return ServiceType{}, err
	}

	st.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, st); err != nil {
		return ServiceType{}, apperr.FromStorage(err, msgNotFound, msgNameExists)
	}
	return st, nil
}

func (s *Service) Activate(ctx context.Context, id string) (ServiceType, error) {
	return s.setActive(ctx, id, true)
}

func (s *Service) Deactivate(ctx context.Context, id string) (ServiceType, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) setActive(ctx context.Context, id string, active bool) (ServiceType, error) {
	st, err := s.GetByID(ctx, id)
	if err != nil {
		return ServiceType{}, err
	}
	if st.Active == active {
		return st, nil
	}
	st.Active = active
	st.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, st); err != nil {
		return ServiceType{}, apperr.FromStorage(err, msgNotFound, msgNameExists)
	}
	return st, nil
}

// Delete falla si alguna cita referencia el tipo de servicio.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.appointments.CountByServiceType(ctx, id)
	if err != nil {
		return apperr.Internal("count appointments by service type", err)
	}
	if n > 0 {
		return apperr.InvalidState("service type is referenced by appointments; deactivate it instead")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.FromStorage(err, msgNotFound, msgNameExists)
	}
	return nil
}

func (s *Service) ensureUniqueName(ctx context.Context, st ServiceType) error {
	other, err := s.repo.FindByName(ctx, st.Name)
	switch {
	case err == nil && other.ID != st.ID:
		return apperr.Conflict(msgNameExists)
	case err != nil && !errors.Is(err, apperr.ErrNoRows):
		return apperr.Internal("find service type by name", err)
	}
	return nil
}

func validate(st ServiceType) error {
	if st.Name == "" {
		return apperr.InvalidInput("name is required")
	}
	if st.DurationMinutes < 0 {
		return apperr.InvalidInput("duration_minutes must be >= 0")
	}
	if st.Price < 0 {
		return apperr.InvalidInput("price must be >= 0")
	}
	return nil
}
