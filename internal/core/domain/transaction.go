package domain

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// incomeCategories and expenseCategories are the allowed category sets per
// transaction type. "Other" is valid for both.
var incomeCategories = map[string]struct{}{
	"Salary":      {},
	"Freelance":   {},
	"Investments": {},
	"Other":       {},
}

var expenseCategories = map[string]struct{}{
	"Food":           {},
	"Transportation": {},
	"Entertainment":  {},
	"Utilities":      {},
	"Housing":        {},
	"Healthcare":     {},
	"Education":      {},
	"Shopping":       {},
	"Other":          {},
}

// ValidType reports whether t is one of the two known transaction types.
func (t TransactionType) ValidType() bool {
	return t == TypeIncome || t == TypeExpense
}

// ValidCategory reports whether category belongs to the allowed set for t.
func (t TransactionType) ValidCategory(category string) bool {
	switch t {
	case TypeIncome:
		_, ok := incomeCategories[category]
		return ok
	case TypeExpense:
		_, ok := expenseCategories[category]
		return ok
	default:
		return false
	}
}

// ExpenseCategories returns the allowed expense category set. Budgets share
// this set with expense transactions.
func ExpenseCategories() []string {
	out := make([]string, 0, len(expenseCategories))
	for c := range expenseCategories {
		out = append(out, c)
	}
	return out
}

// Recurrence describes an optional repeating schedule on a transaction.
// Nothing materialises future occurrences; the descriptor is stored as-is.
type Recurrence struct {
	Pattern string    `json:"pattern"`
	EndDate time.Time `json:"end_date"`
}

// Transaction is a single income or expense record owned by exactly one
// user. The owner reference is immutable after creation.
type Transaction struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"user_id"`
	Type         TransactionType `json:"type"`
	Amount       float64         `json:"amount"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	Tags         []string        `json:"tags,omitempty"`
	Recurring    *Recurrence     `json:"recurring,omitempty"`
	Currency     string          `json:"currency"`
	ExchangeRate float64         `json:"exchange_rate"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
