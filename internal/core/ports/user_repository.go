package ports

import (
	"context"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// UserUpdate carries a partial profile update. Nil fields are left unchanged.
type UserUpdate struct {
	Name     *string
	Email    *string
	Currency *string
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
