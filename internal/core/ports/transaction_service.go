package ports

import (
	"context"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// RecurrenceInput describes a repeating schedule. Pattern and EndDate are
// required together whenever the recurring flag is set.
type RecurrenceInput struct {
	Pattern string
	EndDate time.Time
}

// CreateTransactionInput carries all data needed to record a transaction.
type CreateTransactionInput struct {
	Type        string
	Amount      float64
	Category    string
	Description string
	// Date defaults to the current time when zero.
	Date         time.Time
	Tags         []string
	Recurring    *RecurrenceInput
	Currency     string
	ExchangeRate float64
}

// TransactionService defines use-case operations for transactions.
type TransactionService interface {
	List(ctx context.Context, ownerID string) ([]*domain.Transaction, error)
	Create(ctx context.Context, ownerID string, in CreateTransactionInput) (*domain.Transaction, error)
	Get(ctx context.Context, id, requesterID string) (*domain.Transaction, error)
	Update(ctx context.Context, id, requesterID string, upd TransactionUpdate) (*domain.Transaction, error)
	Delete(ctx context.Context, id, requesterID string) error
	MonthlyStats(ctx context.Context, ownerID string) ([]MonthlyStat, error)
}
