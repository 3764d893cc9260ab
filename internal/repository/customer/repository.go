package customer

import (
	"context"

	"customers-api/internal/domain"
)

// Repository persists and fetches customers. Lookups that match nothing
// return domain.ErrNotFound; writes rejected by a unique index return
// domain.ErrAlreadyExists.
type Repository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	GetByGUID(ctx context.Context, guid string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, guid string, c domain.Customer) error
	Delete(ctx context.Context, guid string) error
}
