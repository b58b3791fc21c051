package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("token is malformed")

	ErrForbidden = errors.New("access forbidden")

	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrGoalNotFound        = errors.New("goal not found")

	// ErrValidation marks a request that is well-formed but violates a
	// domain invariant. Wrap it with a field-specific message.
	ErrValidation = errors.New("validation failed")

	// ErrZeroBudgetAmount is returned when progress is requested for a
	// legacy budget whose amount is zero; new budgets reject zero amounts
	// at creation time.
	ErrZeroBudgetAmount = errors.New("budget amount is zero")
)
