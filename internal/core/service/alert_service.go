package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrack/finance-api/internal/api/metrics"
	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

// AlertService re-checks budget thresholds after an expense is recorded.
// When period spend crosses a budget's alert threshold it logs an alert and
// bumps the alert counter; Redis-backed dedup keeps it to one alert per
// budget per period window. Nothing is sent externally.
type AlertService struct {
	budgets      ports.BudgetRepository
	transactions ports.TransactionRepository
	dedup        ports.AlertDeduper
	logger       zerolog.Logger
	now          func() time.Time
}

func NewAlertService(
	budgets ports.BudgetRepository,
	transactions ports.TransactionRepository,
	dedup ports.AlertDeduper,
	logger zerolog.Logger,
) *AlertService {
	return &AlertService{
		budgets:      budgets,
		transactions: transactions,
		dedup:        dedup,
		logger:       logger,
		now:          time.Now,
	}
}

// Evaluate checks every budget the owner holds for the job's category.
func (s *AlertService) Evaluate(ctx context.Context, job ports.BudgetAlertJob) error {
	start := s.now()
	err := s.evaluate(ctx, job)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.AlertEvaluationDuration.WithLabelValues(outcome).Observe(s.now().Sub(start).Seconds())
	return err
}

func (s *AlertService) evaluate(ctx context.Context, job ports.BudgetAlertJob) error {
	budgets, err := s.budgets.ListByOwnerCategory(ctx, job.OwnerID, job.Category)
	if err != nil {
		return err
	}

	now := s.now()
	for _, b := range budgets {
		if b.AlertThreshold <= 0 || b.Amount <= 0 {
			continue
		}

		periodStart := b.Period.Start(now)
		spent, err := s.transactions.SumExpenses(ctx, b.OwnerID, b.Category, periodStart, now)
		if err != nil {
			return err
		}
		pct := spent / b.Amount * 100
		if pct < b.AlertThreshold {
			continue
		}

		sent, err := s.dedup.AlreadySent(ctx, b.ID, periodStart)
		if err != nil {
			// Dedup store being down must not drop the alert.
			s.logger.Warn().Err(err).Str("budget_id", b.ID).Msg("alert dedup check failed")
		} else if sent {
			metrics.AlertDedupTotal.WithLabelValues("hit").Inc()
			continue
		}
		metrics.AlertDedupTotal.WithLabelValues("miss").Inc()

		s.logger.Warn().
			Str("user_id", b.OwnerID).
			Str("budget_id", b.ID).
			Str("category", b.Category).
			Float64("spent", spent).
			Float64("budget_amount", b.Amount).
			Float64("percent", pct).
			Msg("budget threshold reached")
		metrics.BudgetAlertsTotal.WithLabelValues(b.Category).Inc()

		if err := s.dedup.MarkSent(ctx, b.ID, periodStart, periodTTL(b.Period)); err != nil {
			s.logger.Warn().Err(err).Str("budget_id", b.ID).Msg("alert dedup mark failed")
		}
	}
	return nil
}

// periodTTL bounds how long a dedup entry can possibly stay relevant.
func periodTTL(p domain.BudgetPeriod) time.Duration {
	switch p {
	case domain.PeriodDaily:
		return 24 * time.Hour
	case domain.PeriodWeekly:
		return 7 * 24 * time.Hour
	case domain.PeriodYearly:
		return 366 * 24 * time.Hour
	default:
		return 31 * 24 * time.Hour
	}
}
