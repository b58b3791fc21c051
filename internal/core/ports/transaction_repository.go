package ports

import (
	"context"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// TransactionUpdate carries a partial update. Nil fields are left unchanged.
// The owner reference is never updatable.
type TransactionUpdate struct {
	Type         *domain.TransactionType
	Amount       *float64
	Category     *string
	Description  *string
	Date         *time.Time
	Tags         *[]string
	Recurring    **domain.Recurrence
	Currency     *string
	ExchangeRate *float64
}

// MonthlyStat is one (year, month, type) bucket with its summed amount.
type MonthlyStat struct {
	Year  int                    `json:"year"`
	Month int                    `json:"month"`
	Type  domain.TransactionType `json:"type"`
	Total float64                `json:"total"`
}

// CategoryTotal is a {name, value} pair shaped for charting.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TransactionRepository defines persistence for transactions. Mutating
// operations match on both id and owner in a single conditional write so
// there is no gap between the ownership check and the update.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	FindByID(ctx context.Context, id string) (*domain.Transaction, error)
	// ListByOwner returns the owner's transactions sorted by date descending.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Transaction, error)
	// UpdateOwned applies upd to the document matching both id and ownerID;
	// domain.ErrTransactionNotFound when no document matches.
	UpdateOwned(ctx context.Context, id, ownerID string, upd TransactionUpdate) (*domain.Transaction, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
	DeleteByOwner(ctx context.Context, ownerID string) error

	// MonthlyStats groups the owner's transactions by (year, month, type),
	// summing amounts, most recent first.
	MonthlyStats(ctx context.Context, ownerID string) ([]MonthlyStat, error)
	// SumExpenses totals expense amounts for one category in [from, to].
	SumExpenses(ctx context.Context, ownerID, category string, from, to time.Time) (float64, error)
	// ExpensesByCategory sums expense amounts per category from the given
	// instant onward.
	ExpensesByCategory(ctx context.Context, ownerID string, from time.Time) ([]CategoryTotal, error)
}
