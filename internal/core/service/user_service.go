package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

// UserService implements profile self-service and admin user management.
type UserService struct {
	users        ports.UserRepository
	transactions ports.TransactionRepository
	budgets      ports.BudgetRepository
	goals        ports.GoalRepository
	logger       zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	transactions ports.TransactionRepository,
	budgets ports.BudgetRepository,
	goals ports.GoalRepository,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:        users,
		transactions: transactions,
		budgets:      budgets,
		goals:        goals,
		logger:       logger,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ports.UserUpdate) (*domain.User, error) {
	if upd.Email != nil {
		email := normalizeEmail(*upd.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", domain.ErrValidation)
		}
		upd.Email = &email
	}
	if upd.Name != nil && *upd.Name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
	}
	return s.users.Update(ctx, userID, upd)
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// DeleteAccount removes the user together with all owned records so no
// orphaned documents remain.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	return s.cascade(ctx, userID)
}

func (s *UserService) cascade(ctx context.Context, userID string) error {
	if err := s.transactions.DeleteByOwner(ctx, userID); err != nil {
		return fmt.Errorf("cascade transactions: %w", err)
	}
	if err := s.budgets.DeleteByOwner(ctx, userID); err != nil {
		return fmt.Errorf("cascade budgets: %w", err)
	}
	if err := s.goals.DeleteByOwner(ctx, userID); err != nil {
		return fmt.Errorf("cascade goals: %w", err)
	}
	s.logger.Info().Str("user_id", userID).Msg("account deleted with owned records")
	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, id, requesterID, requesterRole string, upd ports.UserUpdate) (*domain.User, error) {
	if id != requesterID && requesterRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.UpdateProfile(ctx, id, upd)
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.DeleteAccount(ctx, id)
}
