package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

const defaultAlertThreshold = 80

// BudgetService implements budget CRUD and period progress.
type BudgetService struct {
	repo         ports.BudgetRepository
	transactions ports.TransactionRepository
	now          func() time.Time
}

func NewBudgetService(repo ports.BudgetRepository, transactions ports.TransactionRepository) *BudgetService {
	return &BudgetService{repo: repo, transactions: transactions, now: time.Now}
}

func (s *BudgetService) List(ctx context.Context, ownerID string) ([]*domain.Budget, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Create validates and stores a budget. Amounts must be strictly positive
// so progress is always well defined.
func (s *BudgetService) Create(ctx context.Context, ownerID string, in ports.CreateBudgetInput) (*domain.Budget, error) {
	if !domain.TypeExpense.ValidCategory(in.Category) {
		return nil, fmt.Errorf("%w: category %q is not a known expense category", domain.ErrValidation, in.Category)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", domain.ErrValidation)
	}
	period := domain.BudgetPeriod(in.Period)
	if in.Period == "" {
		period = domain.PeriodMonthly
	}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: period must be daily, weekly, monthly or yearly", domain.ErrValidation)
	}
	threshold := float64(defaultAlertThreshold)
	if in.AlertThreshold != nil {
		// An explicit 0 disables alerts for this budget.
		threshold = *in.AlertThreshold
	}
	if threshold < 0 || threshold > 100 {
		return nil, fmt.Errorf("%w: alert threshold must be between 0 and 100", domain.ErrValidation)
	}

	now := s.now().UTC()
	start := in.StartDate
	if start.IsZero() {
		start = now
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	b := &domain.Budget{
		OwnerID:        ownerID,
		Category:       in.Category,
		Amount:         in.Amount,
		Period:         period,
		StartDate:      start,
		EndDate:        in.EndDate,
		Currency:       currency,
		AlertThreshold: threshold,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return s.repo.Create(ctx, b)
}

func (s *BudgetService) Get(ctx context.Context, id, requesterID string) (*domain.Budget, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != requesterID {
		return nil, domain.ErrForbidden
	}
	return b, nil
}

func (s *BudgetService) Update(ctx context.Context, id, requesterID string, upd ports.BudgetUpdate) (*domain.Budget, error) {
	if upd.Category != nil && !domain.TypeExpense.ValidCategory(*upd.Category) {
		return nil, fmt.Errorf("%w: category %q is not a known expense category", domain.ErrValidation, *upd.Category)
	}
	if upd.Amount != nil && *upd.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", domain.ErrValidation)
	}
	if upd.Period != nil && !upd.Period.Valid() {
		return nil, fmt.Errorf("%w: period must be daily, weekly, monthly or yearly", domain.ErrValidation)
	}
	if upd.AlertThreshold != nil && (*upd.AlertThreshold < 0 || *upd.AlertThreshold > 100) {
		return nil, fmt.Errorf("%w: alert threshold must be between 0 and 100", domain.ErrValidation)
	}

	updated, err := s.repo.UpdateOwned(ctx, id, requesterID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return nil, s.classifyMiss(ctx, id)
		}
		return nil, err
	}
	return updated, nil
}

func (s *BudgetService) Delete(ctx context.Context, id, requesterID string) error {
	err := s.repo.DeleteOwned(ctx, id, requesterID)
	if errors.Is(err, domain.ErrBudgetNotFound) {
		return s.classifyMiss(ctx, id)
	}
	return err
}

// Progress sums the owner's matching expenses inside the active period
// window and reports spend against the budget amount.
func (s *BudgetService) Progress(ctx context.Context, id, requesterID string) (*ports.BudgetProgress, error) {
	b, err := s.Get(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if b.Amount <= 0 {
		// Legacy documents predating the creation-time check.
		return nil, domain.ErrZeroBudgetAmount
	}

	now := s.now()
	periodStart := b.Period.Start(now)
	spent, err := s.transactions.SumExpenses(ctx, b.OwnerID, b.Category, periodStart, now)
	if err != nil {
		return nil, err
	}

	return &ports.BudgetProgress{
		BudgetAmount:    b.Amount,
		Spent:           spent,
		Remaining:       b.Amount - spent,
		ProgressPercent: spent / b.Amount * 100,
		PeriodStart:     periodStart,
	}, nil
}

func (s *BudgetService) classifyMiss(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrForbidden
}
