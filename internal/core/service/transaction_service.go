package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

// TransactionService implements transaction CRUD and monthly aggregation.
type TransactionService struct {
	repo   ports.TransactionRepository
	alerts ports.AlertQueue // optional; nil disables budget alerts
	logger zerolog.Logger
	now    func() time.Time
}

func NewTransactionService(repo ports.TransactionRepository, alerts ports.AlertQueue, logger zerolog.Logger) *TransactionService {
	return &TransactionService{repo: repo, alerts: alerts, logger: logger, now: time.Now}
}

func (s *TransactionService) List(ctx context.Context, ownerID string) ([]*domain.Transaction, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Create validates and records a transaction for ownerID. When the new
// record is an expense, a budget alert evaluation is enqueued; alerting
// never fails the request.
func (s *TransactionService) Create(ctx context.Context, ownerID string, in ports.CreateTransactionInput) (*domain.Transaction, error) {
	txType := domain.TransactionType(in.Type)
	if !txType.ValidType() {
		return nil, fmt.Errorf("%w: type must be income or expense", domain.ErrValidation)
	}
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}
	if !txType.ValidCategory(in.Category) {
		return nil, fmt.Errorf("%w: category %q is not allowed for %s transactions", domain.ErrValidation, in.Category, txType)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}

	var recurring *domain.Recurrence
	if in.Recurring != nil {
		if in.Recurring.Pattern == "" || in.Recurring.EndDate.IsZero() {
			return nil, fmt.Errorf("%w: recurring transactions require both a pattern and an end date", domain.ErrValidation)
		}
		recurring = &domain.Recurrence{Pattern: in.Recurring.Pattern, EndDate: in.Recurring.EndDate}
	}

	now := s.now().UTC()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	rate := in.ExchangeRate
	if rate == 0 {
		rate = 1
	}

	tx := &domain.Transaction{
		OwnerID:      ownerID,
		Type:         txType,
		Amount:       in.Amount,
		Category:     in.Category,
		Description:  strings.TrimSpace(in.Description),
		Date:         date,
		Tags:         in.Tags,
		Recurring:    recurring,
		Currency:     currency,
		ExchangeRate: rate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, tx)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to create transaction")
		return nil, err
	}

	if created.Type == domain.TypeExpense && s.alerts != nil {
		s.alerts.Enqueue(ports.BudgetAlertJob{OwnerID: ownerID, Category: created.Category})
	}
	return created, nil
}

func (s *TransactionService) Get(ctx context.Context, id, requesterID string) (*domain.Transaction, error) {
	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.OwnerID != requesterID {
		return nil, domain.ErrForbidden
	}
	return tx, nil
}

// Update applies a partial update. The write itself matches on both id and
// owner; a miss is then classified as NotFound or Forbidden by a lookup.
func (s *TransactionService) Update(ctx context.Context, id, requesterID string, upd ports.TransactionUpdate) (*domain.Transaction, error) {
	if err := s.validateUpdate(ctx, id, upd); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateOwned(ctx, id, requesterID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, s.classifyMiss(ctx, id)
		}
		return nil, err
	}
	return updated, nil
}

func (s *TransactionService) Delete(ctx context.Context, id, requesterID string) error {
	err := s.repo.DeleteOwned(ctx, id, requesterID)
	if errors.Is(err, domain.ErrTransactionNotFound) {
		return s.classifyMiss(ctx, id)
	}
	return err
}

func (s *TransactionService) MonthlyStats(ctx context.Context, ownerID string) ([]ports.MonthlyStat, error) {
	return s.repo.MonthlyStats(ctx, ownerID)
}

// validateUpdate checks the invariants that span multiple fields. Type and
// category must remain a valid pairing after the update, so the existing
// record is consulted when only one of them changes.
func (s *TransactionService) validateUpdate(ctx context.Context, id string, upd ports.TransactionUpdate) error {
	if upd.Amount != nil {
		if err := validateAmount(*upd.Amount); err != nil {
			return err
		}
	}
	if upd.Description != nil && strings.TrimSpace(*upd.Description) == "" {
		return fmt.Errorf("%w: description must not be empty", domain.ErrValidation)
	}
	if upd.Type == nil && upd.Category == nil {
		return nil
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	txType := existing.Type
	if upd.Type != nil {
		txType = *upd.Type
	}
	category := existing.Category
	if upd.Category != nil {
		category = *upd.Category
	}
	if !txType.ValidType() {
		return fmt.Errorf("%w: type must be income or expense", domain.ErrValidation)
	}
	if !txType.ValidCategory(category) {
		return fmt.Errorf("%w: category %q is not allowed for %s transactions", domain.ErrValidation, category, txType)
	}
	return nil
}

// classifyMiss distinguishes a missing record from one owned by another
// user after a conditional write matched nothing.
func (s *TransactionService) classifyMiss(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrForbidden
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: amount must be a finite number", domain.ErrValidation)
	}
	if amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", domain.ErrValidation)
	}
	return nil
}
