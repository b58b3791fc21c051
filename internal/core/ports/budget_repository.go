package ports

import (
	"context"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// BudgetUpdate carries a partial update. Nil fields are left unchanged.
type BudgetUpdate struct {
	Category       *string
	Amount         *float64
	Period         *domain.BudgetPeriod
	StartDate      *time.Time
	EndDate        **time.Time
	Currency       *string
	AlertThreshold *float64
}

// BudgetRepository defines persistence for budgets. Mutations match on both
// id and owner in a single conditional write.
type BudgetRepository interface {
	Create(ctx context.Context, b *domain.Budget) (*domain.Budget, error)
	FindByID(ctx context.Context, id string) (*domain.Budget, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Budget, error)
	// ListByOwnerCategory returns the owner's budgets for one expense category.
	ListByOwnerCategory(ctx context.Context, ownerID, category string) ([]*domain.Budget, error)
	UpdateOwned(ctx context.Context, id, ownerID string, upd BudgetUpdate) (*domain.Budget, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}
