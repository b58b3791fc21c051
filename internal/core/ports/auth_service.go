package ports

import (
	"context"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// AuthService handles registration and login. Both return a fresh session
// token alongside the user record.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
