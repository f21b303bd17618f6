package servicetypes

import "context"

type Repository interface {
	Create(ctx context.Context, st ServiceType) error
	Update(ctx context.Context, st ServiceType) error
	GetByID(ctx context.Context, id string) (ServiceType, error)
	// FindByName compara sin distinguir mayúsculas.
	FindByName(ctx context.Context, name string) (ServiceType, error)
	List(ctx context.Context, f ListFilter) ([]ServiceType, error)
	Delete(ctx context.Context, id string) error
}

// AppointmentCounter lo implementa el repositorio de citas.
type AppointmentCounter interface {
	CountByServiceType(ctx context.Context, serviceTypeID string) (int, error)
}
