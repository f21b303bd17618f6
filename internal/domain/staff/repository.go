package staff

import "context"

type Repository interface {
	Create(ctx context.Context, a Account) error
	Update(ctx context.Context, a Account) error
	GetByID(ctx context.Context, id string) (Account, error)
	FindByEmail(ctx context.Context, email string) (Account, error)
	List(ctx context.Context, f ListFilter) ([]Account, error)
}
