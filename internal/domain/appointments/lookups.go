package appointments

import "context"

// Colaboradores externos. Se inyectan por constructor y los adapters viven en el router,
// así appointments no importa pets/clients/staff/servicetypes.
// Todos deben devolver un apperr NotFound cuando el id no existe.

type PetRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	OwnerID string `json:"owner_id"`
	Active  bool   `json:"active"`
}

type OwnerRef struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Active   bool   `json:"active"`
}

type StaffRef struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

type ServiceTypeRef struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

type PetLookup interface {
	GetPet(ctx context.Context, id string) (PetRef, error)
	PetIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
}

type OwnerLookup interface {
	GetOwner(ctx context.Context, id string) (OwnerRef, error)
}

type StaffLookup interface {
	GetStaff(ctx context.Context, id string) (StaffRef, error)
}

type ServiceTypeLookup interface {
	GetServiceType(ctx context.Context, id string) (ServiceTypeRef, error)
}
