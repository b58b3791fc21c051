package service

import (
	"context"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

const recentTransactionCount = 5

// DashboardService computes the aggregate view rendered on the client's
// landing page. All reads are side-effect free.
type DashboardService struct {
	transactions ports.TransactionRepository
	now          func() time.Time
}

func NewDashboardService(transactions ports.TransactionRepository) *DashboardService {
	return &DashboardService{transactions: transactions, now: time.Now}
}

// Summary returns the signed total balance, the current calendar month's
// income and expense sums, the five most recent transactions and the
// month's expense breakdown by category.
func (s *DashboardService) Summary(ctx context.Context, ownerID string) (*ports.DashboardSummary, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	txs, err := s.transactions.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary := &ports.DashboardSummary{}
	for _, t := range txs {
		signed := t.Amount
		if t.Type == domain.TypeExpense {
			signed = -t.Amount
		}
		summary.TotalBalance += signed

		if !t.Date.Before(monthStart) {
			switch t.Type {
			case domain.TypeIncome:
				summary.MonthlyIncome += t.Amount
			case domain.TypeExpense:
				summary.MonthlyExpenses += t.Amount
			}
		}
	}

	// ListByOwner sorts by date descending, so the head is the recent slice.
	recent := txs
	if len(recent) > recentTransactionCount {
		recent = recent[:recentTransactionCount]
	}
	summary.RecentTransactions = recent

	byCategory, err := s.transactions.ExpensesByCategory(ctx, ownerID, monthStart)
	if err != nil {
		return nil, err
	}
	summary.CategoryExpenses = byCategory

	return summary, nil
}
