package ports

import (
	"context"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// GoalUpdate carries a partial update. Nil fields are left unchanged.
type GoalUpdate struct {
	Name                *string
	TargetAmount        *float64
	CurrentAmount       *float64
	StartDate           *time.Time
	TargetDate          *time.Time
	Category            *string
	Priority            *string
	Status              *domain.GoalStatus
	Currency            *string
	AutoAllocatePercent *float64
	Notes               *string
}

// GoalRepository defines persistence for goals. Mutations match on both id
// and owner in a single conditional write.
type GoalRepository interface {
	Create(ctx context.Context, g *domain.Goal) (*domain.Goal, error)
	FindByID(ctx context.Context, id string) (*domain.Goal, error)
	// ListByOwner returns the owner's goals sorted by target date ascending.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Goal, error)
	UpdateOwned(ctx context.Context, id, ownerID string, upd GoalUpdate) (*domain.Goal, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}
