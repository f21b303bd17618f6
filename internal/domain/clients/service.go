package clients

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
	msgNotFound       = "client not found"
	msgDuplicate      = "a client with the same document or email already exists"
	msgDocumentExists = "document_id already registered"
	msgEmailExists    = "email already registered"
)

type Service struct {
	repo Repository
	pets PetCounter
	now  func() time.Time
}

func NewService(repo Repository, pets PetCounter) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
	}
}

type CreateInput struct {
	FullName   string
	DocumentID string
	Email      string
	Phone      string
	Address    string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Client, error) {
	c := Client{
		FullName:   strings.TrimSpace(in.FullName),
		DocumentID: strings.TrimSpace(in.DocumentID),
		Email:      normalizeEmail(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
		Active:     true,
	}
	if err := validate(c); err != nil {
		return Client{}, err
	}
	if err := s.ensureUnique(ctx, c); err != nil {
		return Client{}, err
	}

	now := s.now()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.repo.Create(ctx, c); err != nil {
		return Client{}, apperr.FromStorage(err, msgNotFound, msgDuplicate)
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Client, error) {
	if strings.TrimSpace(id) == "" {
		return Client{}, apperr.NotFound(msgNotFound)
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Client{}, apperr.FromStorage(err, msgNotFound, msgDuplicate)
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Client, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("list clients", err)
	}
	return items, nil
}

// UpdateInput: punteros para PATCH real, nil = no tocar.
type UpdateInput struct {
	FullName   *string
	DocumentID *string
	Email      *string
	Phone      *string
	Address    *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Client, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return Client{}, err
	}

	if in.FullName != nil {
		c.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.DocumentID != nil {
		c.DocumentID = strings.TrimSpace(*in.DocumentID)
	}
	if in.Email != nil {
		c.Email = normalizeEmail(*in.Email)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}

	if err := validate(c); err != nil {
		return Client{}, err
	}
	if err := s.ensureUnique(ctx, c); err != nil {
		return Client{}, err
	}

	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Client{}, apperr.FromStorage(err, msgNotFound, msgDuplicate)
	}
	return c, nil
}

func (s *Service) Activate(ctx context.Context, id string) (Client, error) {
	return s.setActive(ctx, id, true)
}

func (s *Service) Deactivate(ctx context.Context, id string) (Client, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) setActive(ctx context.Context, id string, active bool) (Client, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return Client{}, err
	}
	if c.Active == active {
		return c, nil
	}
	c.Active = active
	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Client{}, apperr.FromStorage(err, msgNotFound, msgDuplicate)
	}
	return c, nil
}

// Delete es físico. Un cliente con mascotas registradas no se puede borrar (usar Deactivate).
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	n, err := s.pets.CountByOwner(ctx, id)
	if err != nil {
		return apperr.Internal("count pets by owner", err)
	}
	if n > 0 {
		return apperr.InvalidState("client has registered pets; deactivate it instead")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.FromStorage(err, msgNotFound, msgDuplicate)
	}
	return nil
}

func (s *Service) ensureUnique(ctx context.Context, c Client) error {
	other, err := s.repo.FindByDocument(ctx, c.DocumentID)
	switch {
	case err == nil && other.ID != c.ID:
		return apperr.Conflict(msgDocumentExists)
	case err != nil && !errors.Is(err, apperr.ErrNoRows):
		return apperr.Internal("find client by document", err)
	}

	if c.Email == "" {
		return nil
	}
	other, err = s.repo.FindByEmail(ctx, c.Email)
	switch {
	case err == nil && other.ID != c.ID:
		return apperr.Conflict(msgEmailExists)
	case err != nil && !errors.Is(err, apperr.ErrNoRows):
		return apperr.Internal("find client by email", err)
	}
	return nil
}

func validate(c Client) error {
	if c.FullName == "" {
		return apperr.InvalidInput("full_name is required")
	}
	if c.DocumentID == "" {
		return apperr.InvalidInput("document_id is required")
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return apperr.InvalidInput("email is not valid")
		}
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
