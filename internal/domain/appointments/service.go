package appointments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/ports/events"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	msgNotFound      = "appointment not found"
	msgPetNotFound   = "pet not found"
	msgOwnerNotFound = "owner not found"
	msgTypeNotFound  = "service type not found"
	msgSlotBooked    = "slot already booked"

	cancelReasonPrefix = "CANCELLED - "
)

type Deps struct {
	Pets   PetLookup
	Owners OwnerLookup

	// Opcionales: sin ellos la cita sale sin veterinarian / service_type adjuntos.
	Staff        StaffLookup
	ServiceTypes ServiceTypeLookup

	// nil => events.Noop
	Publisher events.Publisher
	Logger    zerolog.Logger
}

type Service struct {
	repo         Repository
	pets         PetLookup
	owners       OwnerLookup
	staff        StaffLookup
	serviceTypes ServiceTypeLookup
	publisher    events.Publisher
	log          zerolog.Logger
	now          func() time.Time
}

func NewService(repo Repository, deps Deps) *Service {
	pub := deps.Publisher
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{
		repo:         repo,
		pets:         deps.Pets,
		owners:       deps.Owners,
		staff:        deps.Staff,
		serviceTypes: deps.ServiceTypes,
		publisher:    pub,
		log:          deps.Logger,
		now:          time.Now,
	}
}

// Detail es la cita con sus relaciones resueltas. Una relación que no se pudo resolver queda nil.
type Detail struct {
	Appointment
	Pet          *PetRef
	Owner        *OwnerRef
	Veterinarian *StaffRef
	ServiceType  *ServiceTypeRef
}

type CreateInput struct {
	PetID          string
	VeterinarianID string
	Date           string // YYYY-MM-DD
	StartTime      string // HH:MM
	EndTime        string
	Status         string // default SCHEDULED
	Reason         string
	Priority       string // default NORMAL
	Notes          string
	ReservationID  string
	ServiceTypeID  string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Detail, error) {
	a := Appointment{
		PetID:          strings.TrimSpace(in.PetID),
		VeterinarianID: strings.TrimSpace(in.VeterinarianID),
		Status:         StatusScheduled,
		Priority:       PriorityNormal,
		Reason:         strings.TrimSpace(in.Reason),
		Notes:          strings.TrimSpace(in.Notes),
		ReservationID:  strings.TrimSpace(in.ReservationID),
		ServiceTypeID:  strings.TrimSpace(in.ServiceTypeID),
	}
	if a.PetID == "" {
		return Detail{}, apperr.InvalidInput("pet_id is required")
	}
	if a.VeterinarianID == "" {
		return Detail{}, apperr.InvalidInput("veterinarian_id is required")
	}
	if strings.TrimSpace(in.Date) == "" {
		return Detail{}, apperr.InvalidInput("date is required")
	}
	if strings.TrimSpace(in.StartTime) == "" {
		return Detail{}, apperr.InvalidInput("start_time is required")
	}

	var err error
	if a.Date, err = ParseDate(in.Date); err != nil {
		return Detail{}, apperr.InvalidInput(err.Error())
	}
	if a.StartTime, err = ParseClock(in.StartTime); err != nil {
		return Detail{}, apperr.InvalidInput(err.Error())
	}
	if strings.TrimSpace(in.EndTime) != "" {
		if a.EndTime, err = ParseClock(in.EndTime); err != nil {
			return Detail{}, apperr.InvalidInput(err.Error())
		}
	}
	if err := checkTimeRange(a); err != nil {
		return Detail{}, err
	}
	if strings.TrimSpace(in.Status) != "" {
		st, ok := ParseStatus(in.Status)
		if !ok {
			return Detail{}, apperr.InvalidInput("invalid status: " + in.Status)
		}
		a.Status = st
	}
	if strings.TrimSpace(in.Priority) != "" {
		p, ok := ParsePriority(in.Priority)
		if !ok {
			return Detail{}, apperr.InvalidInput("invalid priority: " + in.Priority)
		}
		a.Priority = p
	}

	if _, err := s.validatePet(ctx, a.PetID); err != nil {
		return Detail{}, err
	}
	if err := s.validateServiceType(ctx, a.ServiceTypeID); err != nil {
		return Detail{}, err
	}
	if a.Status != StatusCancelled {
		if err := s.checkSlot(ctx, a.VeterinarianID, a.Date, a.StartTime, ""); err != nil {
			return Detail{}, err
		}
	}

	now := s.now()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := s.repo.Create(ctx, a); err != nil {
		return Detail{}, apperr.FromStorage(err, msgNotFound, msgSlotBooked)
	}

	s.publish(ctx, EventCreated, a)
	return s.GetByID(ctx, a.ID)
}

func (s *Service) GetByID(ctx context.Context, id string) (Detail, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return newRelationCache(s).attach(ctx, a), nil
}

func (s *Service) List(ctx context.Context) ([]Detail, error) {
	return s.list(ctx, Filter{})
}

// ListByOwner valida al dueño y lista las citas de todas sus mascotas.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Detail, error) {
	if _, err := s.lookupOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	petIDs, err := s.pets.PetIDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("list pets by owner", err)
	}
	if len(petIDs) == 0 {
		return []Detail{}, nil
	}
	return s.list(ctx, Filter{PetIDs: petIDs})
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Detail, error) {
	if _, err := s.lookupPet(ctx, petID); err != nil {
		return nil, err
	}
	return s.list(ctx, Filter{PetID: petID})
}

func (s *Service) ListByVeterinarian(ctx context.Context, veterinarianID string) ([]Detail, error) {
	return s.list(ctx, Filter{VeterinarianID: strings.TrimSpace(veterinarianID)})
}

// ListByStatus acepta los nombres en inglés o español, sin importar mayúsculas.
func (s *Service) ListByStatus(ctx context.Context, raw string) ([]Detail, error) {
	st, ok := ParseStatus(raw)
	if !ok {
		return nil, apperr.InvalidInput("invalid status: " + raw)
	}
	return s.list(ctx, Filter{Status: st})
}

func (s *Service) ListByDate(ctx context.Context, raw string) ([]Detail, error) {
	d, err := ParseDate(raw)
	if err != nil {
		return nil, apperr.InvalidInput(err.Error())
	}
	return s.list(ctx, Filter{Date: &d})
}

// UpdateInput: punteros para PATCH real, nil = no tocar. EndTime "" limpia la hora de fin.
type UpdateInput struct {
	PetID          *string
	VeterinarianID *string
	Date           *string
	StartTime      *string
	EndTime        *string
	Status         *string
	Reason         *string
	Priority       *string
	Notes          *string
	ReservationID  *string
	ServiceTypeID  *string
}

// Update no valida transiciones de estado: status se puede fijar libremente.
// Solo Cancel y Confirm/Start/Complete respetan la máquina de estados.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Detail, error) {
	current, err := s.get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	a := current

	if in.PetID != nil {
		a.PetID = strings.TrimSpace(*in.PetID)
		if a.PetID == "" {
			return Detail{}, apperr.InvalidInput("pet_id cannot be empty")
		}
	}
	if in.VeterinarianID != nil {
		a.VeterinarianID = strings.TrimSpace(*in.VeterinarianID)
		if a.VeterinarianID == "" {
			return Detail{}, apperr.InvalidInput("veterinarian_id cannot be empty")
		}
	}
	if in.Date != nil {
		if a.Date, err = ParseDate(*in.Date); err != nil {
			return Detail{}, apperr.InvalidInput(err.Error())
		}
	}
	if in.StartTime != nil {
		if a.StartTime, err = ParseClock(*in.StartTime); err != nil {
			return Detail{}, apperr.InvalidInput(err.Error())
		}
	}
	if in.EndTime != nil {
		a.EndTime = ""
		if strings.TrimSpace(*in.EndTime) != "" {
			if a.EndTime, err = ParseClock(*in.EndTime); err != nil {
				return Detail{}, apperr.InvalidInput(err.Error())
			}
		}
	}
	if err := checkTimeRange(a); err != nil {
		return Detail{}, err
	}
	if in.Status != nil {
		st, ok := ParseStatus(*in.Status)
		if !ok {
			return Detail{}, apperr.InvalidInput("invalid status: " + *in.Status)
		}
		a.Status = st
	}
	if in.Priority != nil {
		p, ok := ParsePriority(*in.Priority)
		if !ok {
			return Detail{}, apperr.InvalidInput("invalid priority: " + *in.Priority)
		}
		a.Priority = p
	}
	if in.Reason != nil {
		a.Reason = strings.TrimSpace(*in.Reason)
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.ReservationID != nil {
		a.ReservationID = strings.TrimSpace(*in.ReservationID)
	}
	if in.ServiceTypeID != nil {
		a.ServiceTypeID = strings.TrimSpace(*in.ServiceTypeID)
	}

	if a.PetID != current.PetID {
		if _, err := s.validatePet(ctx, a.PetID); err != nil {
			return Detail{}, err
		}
	}
	if a.ServiceTypeID != current.ServiceTypeID {
		if err := s.validateServiceType(ctx, a.ServiceTypeID); err != nil {
			return Detail{}, err
		}
	}

	// Una cita cancelada que vuelve a un estado activo reclama su slot otra vez.
	slotChanged := a.VeterinarianID != current.VeterinarianID ||
		!a.Date.Equal(current.Date) ||
		a.StartTime != current.StartTime
	reactivated := current.Status == StatusCancelled && a.Status != StatusCancelled
	if (slotChanged || reactivated) && a.Status != StatusCancelled {
		if err := s.checkSlot(ctx, a.VeterinarianID, a.Date, a.StartTime, a.ID); err != nil {
			return Detail{}, err
		}
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Detail{}, apperr.FromStorage(err, msgNotFound, msgSlotBooked)
	}

	s.publish(ctx, EventUpdated, a)
	return s.GetByID(ctx, a.ID)
}

// Cancel pisa el motivo de consulta con "CANCELLED - <reason>" cuando viene reason.
func (s *Service) Cancel(ctx context.Context, id, reason string) (Detail, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	switch a.Status {
	case StatusCompleted:
		return Detail{}, apperr.InvalidState("cannot cancel a completed appointment")
	case StatusCancelled:
		return Detail{}, apperr.InvalidState("appointment already cancelled")
	}

	a.Status = StatusCancelled
	if r := strings.TrimSpace(reason); r != "" {
		a.Reason = cancelReasonPrefix + r
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Detail{}, apperr.FromStorage(err, msgNotFound, msgSlotBooked)
	}

	s.publish(ctx, EventCancelled, a)
	return s.GetByID(ctx, a.ID)
}

func (s *Service) Confirm(ctx context.Context, id string) (Detail, error) {
	return s.transition(ctx, id, StatusConfirmed)
}

func (s *Service) Start(ctx context.Context, id string) (Detail, error) {
	return s.transition(ctx, id, StatusInProgress)
}

func (s *Service) Complete(ctx context.Context, id string) (Detail, error) {
	return s.transition(ctx, id, StatusCompleted)
}

func (s *Service) transition(ctx context.Context, id string, next Status) (Detail, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	if !a.Status.CanTransitionTo(next) {
		return Detail{}, apperr.InvalidState(fmt.Sprintf("cannot move appointment from %s to %s", a.Status, next))
	}

	a.Status = next
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Detail{}, apperr.FromStorage(err, msgNotFound, msgSlotBooked)
	}

	s.publish(ctx, EventStatusChanged, a)
	return s.GetByID(ctx, a.ID)
}

// Delete es físico e incondicional.
func (s *Service) Delete(ctx context.Context, id string) error {
	a, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.FromStorage(err, msgNotFound, "")
	}
	s.publish(ctx, EventDeleted, a)
	return nil
}

func (s *Service) get(ctx context.Context, id string) (Appointment, error) {
	if strings.TrimSpace(id) == "" {
		return Appointment{}, apperr.NotFound(msgNotFound)
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, apperr.FromStorage(err, msgNotFound, "")
	}
	return a, nil
}

func (s *Service) list(ctx context.Context, f Filter) ([]Detail, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("list appointments", err)
	}
	return newRelationCache(s).attachAll(ctx, items), nil
}

// validatePet: mascota existente y activa, con dueño existente y activo.
func (s *Service) validatePet(ctx context.Context, petID string) (PetRef, error) {
	pet, err := s.lookupPet(ctx, petID)
	if err != nil {
		return PetRef{}, err
	}
	if !pet.Active {
		return PetRef{}, apperr.InvalidState("pet is inactive")
	}
	if strings.TrimSpace(pet.OwnerID) == "" {
		return PetRef{}, apperr.InvalidState("pet has no owner")
	}
	owner, err := s.lookupOwner(ctx, pet.OwnerID)
	if err != nil {
		return PetRef{}, err
	}
	if !owner.Active {
		return PetRef{}, apperr.InvalidState("owner is inactive")
	}
	return pet, nil
}

func (s *Service) lookupPet(ctx context.Context, petID string) (PetRef, error) {
	if strings.TrimSpace(petID) == "" {
		return PetRef{}, apperr.NotFound(msgPetNotFound)
	}
	pet, err := s.pets.GetPet(ctx, petID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return PetRef{}, apperr.NotFound(msgPetNotFound)
		}
		return PetRef{}, apperr.Internal("lookup pet", err)
	}
	return pet, nil
}

func (s *Service) lookupOwner(ctx context.Context, ownerID string) (OwnerRef, error) {
	if strings.TrimSpace(ownerID) == "" {
		return OwnerRef{}, apperr.NotFound(msgOwnerNotFound)
	}
	owner, err := s.owners.GetOwner(ctx, ownerID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return OwnerRef{}, apperr.NotFound(msgOwnerNotFound)
		}
		return OwnerRef{}, apperr.Internal("lookup owner", err)
	}
	return owner, nil
}

// validateServiceType: service_type_id es opcional, pero si viene debe existir.
func (s *Service) validateServiceType(ctx context.Context, id string) error {
	if id == "" || s.serviceTypes == nil {
		return nil
	}
	if _, err := s.serviceTypes.GetServiceType(ctx, id); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.NotFound(msgTypeNotFound)
		}
		return apperr.Internal("lookup service type", err)
	}
	return nil
}

// checkSlot es el pre-check amigable; la garantía real es el índice único del storage.
func (s *Service) checkSlot(ctx context.Context, veterinarianID string, date time.Time, startTime, excludeID string) error {
	taken, err := s.repo.SlotTaken(ctx, veterinarianID, date, startTime, excludeID)
	if err != nil {
		return apperr.Internal("check slot", err)
	}
	if taken {
		return apperr.Conflict(msgSlotBooked)
	}
	return nil
}

func checkTimeRange(a Appointment) error {
	// HH:MM se compara bien como string.
	if a.EndTime != "" && a.EndTime <= a.StartTime {
		return apperr.InvalidInput("end_time must be after start_time")
	}
	return nil
}

