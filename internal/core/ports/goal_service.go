package ports

import (
	"context"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// CreateGoalInput carries all data needed to define a goal.
type CreateGoalInput struct {
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	// StartDate defaults to the current time when zero.
	StartDate           time.Time
	TargetDate          time.Time
	Category            string
	Priority            string
	Currency            string
	AutoAllocatePercent float64
	Notes               string
}

// GoalWithProgress pairs a goal with its derived progress percentage.
type GoalWithProgress struct {
	*domain.Goal
	ProgressPercent float64 `json:"progress_percent"`
}

// GoalService defines use-case operations for goals.
type GoalService interface {
	List(ctx context.Context, ownerID string) ([]*domain.Goal, error)
	Create(ctx context.Context, ownerID string, in CreateGoalInput) (*domain.Goal, error)
	Get(ctx context.Context, id, requesterID string) (*domain.Goal, error)
	Update(ctx context.Context, id, requesterID string, upd GoalUpdate) (*domain.Goal, error)
	Delete(ctx context.Context, id, requesterID string) error
	// UpdateProgress sets the current amount and recomputes the status.
	UpdateProgress(ctx context.Context, id, requesterID string, currentAmount float64) (*GoalWithProgress, error)
}
