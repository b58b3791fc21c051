package ports

import (
	"context"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// DashboardSummary aggregates the figures the client dashboard renders.
type DashboardSummary struct {
	TotalBalance       float64               `json:"total_balance"`
	MonthlyIncome      float64               `json:"monthly_income"`
	MonthlyExpenses    float64               `json:"monthly_expenses"`
	RecentTransactions []*domain.Transaction `json:"recent_transactions"`
	CategoryExpenses   []CategoryTotal       `json:"category_expenses"`
}

// DashboardService computes the read-only dashboard view.
type DashboardService interface {
	Summary(ctx context.Context, ownerID string) (*DashboardSummary, error)
}
