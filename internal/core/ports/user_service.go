package ports

import (
	"context"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// UserService covers profile self-service and admin user management.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, upd UserUpdate) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// DeleteAccount removes the user and cascades deletion of owned
	// transactions, budgets and goals.
	DeleteAccount(ctx context.Context, userID string) error

	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// UpdateUser is allowed for the target user themselves or an admin.
	UpdateUser(ctx context.Context, id, requesterID, requesterRole string, upd UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
