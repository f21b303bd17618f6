package pets

import (
	"context"
	"strings"
	"time"

	"vet-clinic/internal/platform/apperr"

	"github.com/google/uuid"
)

const (
	msgNotFound      = "pet not found"
	msgOwnerNotFound = "owner not found"
)

type Service struct {
	repo         Repository
	owners       OwnerLookup
	appointments AppointmentCounter
	now          func() time.Time
}

func NewService(repo Repository, owners OwnerLookup, appointments AppointmentCounter) *Service {
	return &Service{
		repo:         repo,
		owners:       owners,
		appointments: appointments,
		now:          time.Now,
	}
}

type CreateInput struct {
	OwnerID   string
	Name      string
	Species   string
	Breed     string
	Sex       string
	BirthDate *time.Time
	Microchip string
	Notes     string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.OwnerID) == "" {
		return Pet{}, apperr.InvalidInput("owner_id is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, apperr.InvalidInput("name is required")
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, apperr.InvalidInput("species is required")
	}
	sex, ok := ParseSex(strings.ToLower(strings.TrimSpace(in.Sex)))
	if !ok {
		return Pet{}, apperr.InvalidInput("sex must be male, female or unknown")
	}
	if err := s.ensureActiveOwner(ctx, in.OwnerID); err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		OwnerID:   strings.TrimSpace(in.OwnerID),
		Name:      strings.TrimSpace(in.Name),
		Species:   Species(strings.ToLower(strings.TrimSpace(in.Species))),
		Breed:     strings.TrimSpace(in.Breed),
		Sex:       sex,
		BirthDate: in.BirthDate,
		Microchip: strings.TrimSpace(in.Microchip),
		Notes:     strings.TrimSpace(in.Notes),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, apperr.FromStorage(err, msgNotFound, "pet already exists")
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, apperr.NotFound(msgNotFound)
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, apperr.FromStorage(err, msgNotFound, "")
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Pet, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("list pets", err)
	}
	return items, nil
}

// ListByOwner valida que el dueño exista (activo o no).
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	if _, err := s.lookupOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("list pets by owner", err)
	}
	return items, nil
}

// PatchBirthDate distingue "no enviado" de "null = limpiar".
type PatchBirthDate struct {
	Present bool
	Value   *time.Time
}

type UpdateProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	OwnerID   *string
	Name      *string
	Species   *string
	Breed     *string
	Sex       *string
	BirthDate PatchBirthDate
	Microchip *string
	Notes     *string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.OwnerID != nil {
		ownerID := strings.TrimSpace(*in.OwnerID)
		if ownerID == "" {
			return Pet{}, apperr.InvalidInput("owner_id cannot be empty")
		}
		if ownerID != p.OwnerID {
			if err := s.ensureActiveOwner(ctx, ownerID); err != nil {
				return Pet{}, err
			}
			p.OwnerID = ownerID
		}
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, apperr.InvalidInput("name cannot be empty")
		}
		p.Name = name
	}
	if in.Species != nil {
		species := strings.ToLower(strings.TrimSpace(*in.Species))
		if species == "" {
			return Pet{}, apperr.InvalidInput("species cannot be empty")
		}
		p.Species = Species(species)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		sex, ok := ParseSex(strings.ToLower(strings.TrimSpace(*in.Sex)))
		if !ok {
			return Pet{}, apperr.InvalidInput("sex must be male, female or unknown")
		}
		p.Sex = sex
	}
	if in.BirthDate.Present {
		p.BirthDate = in.BirthDate.Value
	}
	if in.Microchip != nil {
		p.Microchip = strings.TrimSpace(*in.Microchip)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, apperr.FromStorage(err, msgNotFound, "")
	}
	return p, nil
}

func (s *Service) Activate(ctx context.Context, id string) (Pet, error) {
	return s.setActive(ctx, id, true)
}

func (s *Service) Deactivate(ctx context.Context, id string) (Pet, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) setActive(ctx context.Context, id string, active bool) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if p.Active == active {
		return p, nil
	}
	p.Active = active
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, apperr.FromStorage(err, msgNotFound, "")
	}
	return p, nil
}

// Delete es físico; con citas registradas solo se permite Deactivate.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.appointments.CountByPet(ctx, id)
	if err != nil {
		return apperr.Internal("count appointments by pet", err)
	}
	if n > 0 {
		return apperr.InvalidState("pet has appointments; deactivate it instead")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.FromStorage(err, msgNotFound, "")
	}
	return nil
}

func (s *Service) lookupOwner(ctx context.Context, ownerID string) (Owner, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Owner{}, apperr.NotFound(msgOwnerNotFound)
	}
	o, err := s.owners.GetOwner(ctx, ownerID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return Owner{}, apperr.NotFound(msgOwnerNotFound)
		}
		return Owner{}, apperr.Internal("lookup owner", err)
	}
	return o, nil
}

func (s *Service) ensureActiveOwner(ctx context.Context, ownerID string) error {
	o, err := s.lookupOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if !o.Active {
		return apperr.InvalidState("owner is inactive")
	}
	return nil
}
