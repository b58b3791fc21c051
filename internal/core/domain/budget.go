package domain

import "time"

// BudgetPeriod is the recurrence window a budget applies to.
type BudgetPeriod string

const (
	PeriodDaily   BudgetPeriod = "daily"
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether p is a known budget period.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Start returns the beginning of the period window containing now:
// daily → midnight today, weekly → most recent Sunday, monthly → first of
// the month, yearly → January 1st.
func (p BudgetPeriod) Start(now time.Time) time.Time {
	switch p {
	case PeriodDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodWeekly:
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return day.AddDate(0, 0, -int(now.Weekday()))
	case PeriodYearly:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default: // monthly
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

// Budget caps expense spending in one category for a recurring period.
// Spend-to-date is derived on demand, never stored.
type Budget struct {
	ID        string       `json:"id"`
	OwnerID   string       `json:"user_id"`
	Category  string       `json:"category"`
	Amount    float64      `json:"amount"`
	Period    BudgetPeriod `json:"period"`
	StartDate time.Time    `json:"start_date"`
	EndDate   *time.Time   `json:"end_date,omitempty"`
	Currency  string       `json:"currency"`
	// AlertThreshold is the percentage of the budget at which a
	// notification fires (0 disables alerts).
	AlertThreshold float64   `json:"alert_threshold"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
