package staff

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"vet-clinic/internal/platform/apperr"

	"github.com/google/uuid"
)

const (
	msgNotFound    = "staff account not found"
	msgEmailExists = "email already registered"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	FullName string
	Email    string
	Role     string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Account, error) {
	role, ok := ParseRole(in.Role)
	if !ok {
		return Account{}, apperr.InvalidInput("role must be ADMIN, VETERINARIAN or RECEPTIONIST")
	}
	a := Account{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Role:     role,
		Active:   true,
	}
	if err := validate(a); err != nil {
		return Account{}, err
	}
	if err := s.ensureUniqueEmail(ctx, a); err != nil {
		return Account{}, err
	}

	now := s.now()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := s.repo.Create(ctx, a); err != nil {
		return Account{}, apperr.FromStorage(err, msgNotFound, msgEmailExists)
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Account, error) {
	if strings.TrimSpace(id) == "" {
		return Account{}, apperr.NotFound(msgNotFound)
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Account{}, apperr.FromStorage(err, msgNotFound, msgEmailExists)
	}
	return a, nil
}

// List acepta role vacío (todos) o un rol válido en cualquier capitalización.
func (s *Service) List(ctx context.Context, role string, active *bool) ([]Account, error) {
	f := ListFilter{Active: active}
	if strings.TrimSpace(role) != "" {
		r, ok := ParseRole(role)
		if !ok {
			return nil, apperr.InvalidInput("unknown role " + role)
		}
		f.Role = r
	}
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("list staff", err)
	}
	return items, nil
}

type UpdateInput struct {
	FullName *string
	Email    *string
	Role     *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Account, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if in.FullName != nil {
		a.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Email != nil {
		a.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Role != nil {
		role, ok := ParseRole(*in.Role)
		if !ok {
			return Account{}, apperr.InvalidInput("role must be ADMIN, VETERINARIAN or RECEPTIONIST")
		}
		a.Role = role
	}
	if err := validate(a); err != nil {
		return Account{}, err
	}
	if err := s.ensureUniqueEmail(ctx, a); err != nil {
		return Account{}, err
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Account{}, apperr.FromStorage(err, msgNotFound, msgEmailExists)
	}
	return a, nil
}

func (s *Service) Activate(ctx context.Context, id string) (Account, error) {
	return s.setActive(ctx, id, true)
}

func (s *Service) Deactivate(ctx context.Context, id string) (Account, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) setActive(ctx context.Context, id string, active bool) (Account, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if a.Active == active {
		return a, nil
	}
	a.Active = active
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Account{}, apperr.FromStorage(err, msgNotFound, msgEmailExists)
	}
	return a, nil
}

func (s *Service) ensureUniqueEmail(ctx context.Context, a Account) error {
	other, err := s.repo.FindByEmail(ctx, a.Email)
	switch {
	case err == nil && other.ID != a.ID:
		return apperr.Conflict(msgEmailExists)
	case err != nil && !errors.Is(err, apperr.ErrNoRows):
		return apperr.Internal("find staff by email", err)
	}
	return nil
}

func validate(a Account) error {
	if a.FullName == "" {
		return apperr.InvalidInput("full_name is required")
	}
	if a.Email == "" {
		return apperr.InvalidInput("email is required")
	}
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return apperr.InvalidInput("email is not valid")
	}
	return nil
}
