package domain

import "time"

// GoalStatus tracks a goal's lifecycle.
type GoalStatus string

const (
	GoalNotStarted GoalStatus = "Not Started"
	GoalInProgress GoalStatus = "In Progress"
	GoalCompleted  GoalStatus = "Completed"
	GoalAbandoned  GoalStatus = "Abandoned"
)

var goalCategories = map[string]struct{}{
	"Savings":        {},
	"Investment":     {},
	"Purchase":       {},
	"Debt Repayment": {},
	"Other":          {},
}

var goalPriorities = map[string]struct{}{
	"Low":    {},
	"Medium": {},
	"High":   {},
}

// ValidGoalCategory reports whether category is one of the goal category enums.
func ValidGoalCategory(category string) bool {
	_, ok := goalCategories[category]
	return ok
}

// ValidGoalPriority reports whether priority is Low, Medium or High.
func ValidGoalPriority(priority string) bool {
	_, ok := goalPriorities[priority]
	return ok
}

// Goal is a savings/debt/investment target owned by one user.
type Goal struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"user_id"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	StartDate     time.Time  `json:"start_date"`
	TargetDate    time.Time  `json:"target_date"`
	Category      string     `json:"category"`
	Priority      string     `json:"priority"`
	Status        GoalStatus `json:"status"`
	Currency      string     `json:"currency"`
	// AutoAllocatePercent is an advisory percentage of income to route to
	// this goal; nothing allocates automatically.
	AutoAllocatePercent float64   `json:"auto_allocate_percent,omitempty"`
	Notes               string    `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NextStatus recomputes the status after current amount changes. Completed
// is sticky: lowering the amount afterwards never regresses the status.
func (g *Goal) NextStatus(current float64) GoalStatus {
	switch {
	case g.Status == GoalCompleted:
		return GoalCompleted
	case current >= g.TargetAmount:
		return GoalCompleted
	case current > 0:
		return GoalInProgress
	default:
		return g.Status
	}
}

// ProgressPercent returns current/target × 100 clamped to [0, 100] for
// display. TargetAmount is validated > 0 at creation.
func (g *Goal) ProgressPercent() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	pct := g.CurrentAmount / g.TargetAmount * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
