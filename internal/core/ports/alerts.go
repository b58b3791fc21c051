package ports

import (
	"context"
	"time"
)

// BudgetAlertJob asks the alert evaluator to re-check the budgets covering
// one owner/category pair after an expense was recorded.
type BudgetAlertJob struct {
	OwnerID  string
	Category string
}

// AlertQueue accepts evaluation jobs for asynchronous processing. Enqueue
// must never block the calling request path beyond channel capacity.
type AlertQueue interface {
	Enqueue(job BudgetAlertJob)
}

// AlertEvaluator performs the threshold check for a single job.
type AlertEvaluator interface {
	Evaluate(ctx context.Context, job BudgetAlertJob) error
}

// AlertDeduper suppresses repeat alerts for the same budget within one
// period window.
type AlertDeduper interface {
	// AlreadySent reports whether an alert for this budget and period start
	// was already recorded.
	AlreadySent(ctx context.Context, budgetID string, periodStart time.Time) (bool, error)
	// MarkSent records the alert; the entry expires with the period.
	MarkSent(ctx context.Context, budgetID string, periodStart time.Time, ttl time.Duration) error
}
