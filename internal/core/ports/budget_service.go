package ports

import (
	"context"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// CreateBudgetInput carries all data needed to define a budget.
type CreateBudgetInput struct {
	Category string
	Amount   float64
	// Period defaults to monthly when empty.
	Period string
	// StartDate defaults to the current time when zero.
	StartDate time.Time
	EndDate   *time.Time
	Currency string
	// AlertThreshold defaults to 80 when nil; an explicit 0 disables
	// alerts for the budget.
	AlertThreshold *float64
}

// BudgetProgress is the derived spend-vs-limit view for the active period.
type BudgetProgress struct {
	BudgetAmount    float64   `json:"budget_amount"`
	Spent           float64   `json:"spent"`
	Remaining       float64   `json:"remaining"`
	ProgressPercent float64   `json:"progress_percent"`
	PeriodStart     time.Time `json:"period_start"`
}

// BudgetService defines use-case operations for budgets.
type BudgetService interface {
	List(ctx context.Context, ownerID string) ([]*domain.Budget, error)
	Create(ctx context.Context, ownerID string, in CreateBudgetInput) (*domain.Budget, error)
	Get(ctx context.Context, id, requesterID string) (*domain.Budget, error)
	Update(ctx context.Context, id, requesterID string, upd BudgetUpdate) (*domain.Budget, error)
	Delete(ctx context.Context, id, requesterID string) error
	Progress(ctx context.Context, id, requesterID string) (*BudgetProgress, error)
}
