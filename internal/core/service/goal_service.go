package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

// GoalService implements goal CRUD and progress updates.
type GoalService struct {
	repo ports.GoalRepository
	now  func() time.Time
}

func NewGoalService(repo ports.GoalRepository) *GoalService {
	return &GoalService{repo: repo, now: time.Now}
}

func (s *GoalService) List(ctx context.Context, ownerID string) ([]*domain.Goal, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *GoalService) Create(ctx context.Context, ownerID string, in ports.CreateGoalInput) (*domain.Goal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.TargetAmount <= 0 {
		return nil, fmt.Errorf("%w: target amount must be greater than zero", domain.ErrValidation)
	}
	if in.CurrentAmount < 0 {
		return nil, fmt.Errorf("%w: current amount cannot be negative", domain.ErrValidation)
	}
	if in.TargetDate.IsZero() {
		return nil, fmt.Errorf("%w: target date is required", domain.ErrValidation)
	}
	if !domain.ValidGoalCategory(in.Category) {
		return nil, fmt.Errorf("%w: category %q is not a known goal category", domain.ErrValidation, in.Category)
	}
	priority := in.Priority
	if priority == "" {
		priority = "Medium"
	}
	if !domain.ValidGoalPriority(priority) {
		return nil, fmt.Errorf("%w: priority must be Low, Medium or High", domain.ErrValidation)
	}
	if in.AutoAllocatePercent < 0 || in.AutoAllocatePercent > 100 {
		return nil, fmt.Errorf("%w: auto-allocate percentage must be between 0 and 100", domain.ErrValidation)
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

	g := &domain.Goal{
		OwnerID:             ownerID,
		Name:                strings.TrimSpace(in.Name),
		TargetAmount:        in.TargetAmount,
		CurrentAmount:       in.CurrentAmount,
		StartDate:           start,
		TargetDate:          in.TargetDate,
		Category:            in.Category,
		Priority:            priority,
		Status:              domain.GoalNotStarted,
		Currency:            currency,
		AutoAllocatePercent: in.AutoAllocatePercent,
		Notes:               in.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	g.Status = g.NextStatus(in.CurrentAmount)
	return s.repo.Create(ctx, g)
}

func (s *GoalService) Get(ctx context.Context, id, requesterID string) (*domain.Goal, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.OwnerID != requesterID {
		return nil, domain.ErrForbidden
	}
	return g, nil
}

func (s *GoalService) Update(ctx context.Context, id, requesterID string, upd ports.GoalUpdate) (*domain.Goal, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
	}
	if upd.TargetAmount != nil && *upd.TargetAmount <= 0 {
		return nil, fmt.Errorf("%w: target amount must be greater than zero", domain.ErrValidation)
	}
	if upd.CurrentAmount != nil && *upd.CurrentAmount < 0 {
		return nil, fmt.Errorf("%w: current amount cannot be negative", domain.ErrValidation)
	}
	if upd.Category != nil && !domain.ValidGoalCategory(*upd.Category) {
		return nil, fmt.Errorf("%w: category %q is not a known goal category", domain.ErrValidation, *upd.Category)
	}
	if upd.Priority != nil && !domain.ValidGoalPriority(*upd.Priority) {
		return nil, fmt.Errorf("%w: priority must be Low, Medium or High", domain.ErrValidation)
	}

	updated, err := s.repo.UpdateOwned(ctx, id, requesterID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return nil, s.classifyMiss(ctx, id)
		}
		return nil, err
	}
	return updated, nil
}

func (s *GoalService) Delete(ctx context.Context, id, requesterID string) error {
	err := s.repo.DeleteOwned(ctx, id, requesterID)
	if errors.Is(err, domain.ErrGoalNotFound) {
		return s.classifyMiss(ctx, id)
	}
	return err
}

// UpdateProgress sets the current amount and advances the status:
// Completed when current reaches the target, In Progress when the amount is
// positive. Completed is never regressed.
func (s *GoalService) UpdateProgress(ctx context.Context, id, requesterID string, currentAmount float64) (*ports.GoalWithProgress, error) {
	if currentAmount < 0 {
		return nil, fmt.Errorf("%w: current amount cannot be negative", domain.ErrValidation)
	}

	g, err := s.Get(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	status := g.NextStatus(currentAmount)
	updated, err := s.repo.UpdateOwned(ctx, id, requesterID, ports.GoalUpdate{
		CurrentAmount: &currentAmount,
		Status:        &status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return nil, s.classifyMiss(ctx, id)
		}
		return nil, err
	}
	return &ports.GoalWithProgress{Goal: updated, ProgressPercent: updated.ProgressPercent()}, nil
}

func (s *GoalService) classifyMiss(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrForbidden
}
