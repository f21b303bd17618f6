package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context, f ListFilter) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	Delete(ctx context.Context, id string) error
}

// OwnerLookup resuelve el dueño (cliente). Debe devolver apperr NotFound si no existe.
type OwnerLookup interface {
	GetOwner(ctx context.Context, id string) (Owner, error)
}

// AppointmentCounter lo implementa el repositorio de citas.
type AppointmentCounter interface {
	CountByPet(ctx context.Context, petID string) (int, error)
}
