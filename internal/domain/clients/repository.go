package clients

import "context"

// Repository devuelve apperr.ErrNoRows / apperr.ErrDuplicate como sentinels.
type Repository interface {
	Create(ctx context.Context, c Client) error
	Update(ctx context.Context, c Client) error
	GetByID(ctx context.Context, id string) (Client, error)
	FindByDocument(ctx context.Context, documentID string) (Client, error)
	FindByEmail(ctx context.Context, email string) (Client, error)
	List(ctx context.Context, f ListFilter) ([]Client, error)
	Delete(ctx context.Context, id string) error
}

// PetCounter lo implementa el repositorio de mascotas.
// Se usa para evitar ciclos de imports entre módulos (clients <-> pets).
type PetCounter interface {
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}
