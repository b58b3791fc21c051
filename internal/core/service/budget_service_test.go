package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

func floatPtr(v float64) *float64 { return &v }

func TestBudgetService_Create_DefaultsAndValidation(t *testing.T) {
	repo := newStubBudgetRepo()
	svc := NewBudgetService(repo, newStubTransactionRepo())

	b, err := svc.Create(context.Background(), "user-1", ports.CreateBudgetInput{
		Category: "Food",
		Amount:   300,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if b.Period != domain.PeriodMonthly {
		t.Fatalf("expected monthly default, got %s", b.Period)
	}
	if b.AlertThreshold != 80 {
		t.Fatalf("expected default threshold 80, got %v", b.AlertThreshold)
	}
	if b.Currency != "USD" {
		t.Fatalf("expected USD default, got %q", b.Currency)
	}

	cases := []struct {
		name string
		in   ports.CreateBudgetInput
	}{
		{"income category", ports.CreateBudgetInput{Category: "Salary", Amount: 100}},
		{"zero amount", ports.CreateBudgetInput{Category: "Food", Amount: 0}},
		{"negative amount", ports.CreateBudgetInput{Category: "Food", Amount: -10}},
		{"bad period", ports.CreateBudgetInput{Category: "Food", Amount: 100, Period: "fortnightly"}},
		{"threshold above 100", ports.CreateBudgetInput{Category: "Food", Amount: 100, AlertThreshold: floatPtr(120)}},
		{"negative threshold", ports.CreateBudgetInput{Category: "Food", Amount: 100, AlertThreshold: floatPtr(-5)}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), "user-1", tc.in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestBudgetService_Create_ExplicitZeroThresholdDisablesAlerts(t *testing.T) {
	repo := newStubBudgetRepo()
	svc := NewBudgetService(repo, newStubTransactionRepo())

	b, err := svc.Create(context.Background(), "user-1", ports.CreateBudgetInput{
		Category:       "Food",
		Amount:         300,
		AlertThreshold: floatPtr(0),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if b.AlertThreshold != 0 {
		t.Fatalf("explicit zero threshold must not be coerced to the default, got %v", b.AlertThreshold)
	}
}

func TestBudgetService_Progress(t *testing.T) {
	budgets := newStubBudgetRepo()
	transactions := newStubTransactionRepo()
	svc := NewBudgetService(budgets, transactions)

	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	b, _ := budgets.Create(context.Background(), &domain.Budget{
		OwnerID: "user-1", Category: "Food", Amount: 100, Period: domain.PeriodMonthly,
	})

	// Inside the month: counted. Before the month or wrong category: not.
	seed := []struct {
		amount   float64
		category string
		date     time.Time
		typ      domain.TransactionType
	}{
		{25, "Food", time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), domain.TypeExpense},
		{15, "Food", time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC), domain.TypeExpense},
		{40, "Food", time.Date(2025, 5, 28, 0, 0, 0, 0, time.UTC), domain.TypeExpense},
		{30, "Transportation", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), domain.TypeExpense},
		{500, "Salary", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), domain.TypeIncome},
	}
	for _, s := range seed {
		_, _ = transactions.Create(context.Background(), &domain.Transaction{
			OwnerID: "user-1", Type: s.typ, Amount: s.amount, Category: s.category, Date: s.date,
		})
	}

	p, err := svc.Progress(context.Background(), b.ID, "user-1")
	if err != nil {
		t.Fatalf("Progress returned error: %v", err)
	}
	if p.Spent != 40 {
		t.Fatalf("expected spent 40, got %v", p.Spent)
	}
	if p.Remaining != 60 {
		t.Fatalf("expected remaining 60, got %v", p.Remaining)
	}
	if p.ProgressPercent != 40 {
		t.Fatalf("expected 40%%, got %v", p.ProgressPercent)
	}
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !p.PeriodStart.Equal(want) {
		t.Fatalf("expected period start %v, got %v", want, p.PeriodStart)
	}
}

func TestBudgetService_Progress_ZeroAmount(t *testing.T) {
	budgets := newStubBudgetRepo()
	svc := NewBudgetService(budgets, newStubTransactionRepo())

	// Legacy document stored before amounts were validated.
	b, _ := budgets.Create(context.Background(), &domain.Budget{
		OwnerID: "user-1", Category: "Food", Amount: 0, Period: domain.PeriodMonthly,
	})

	if _, err := svc.Progress(context.Background(), b.ID, "user-1"); !errors.Is(err, domain.ErrZeroBudgetAmount) {
		t.Fatalf("expected ErrZeroBudgetAmount, got %v", err)
	}
}

func TestBudgetService_OwnershipAndMisses(t *testing.T) {
	budgets := newStubBudgetRepo()
	svc := NewBudgetService(budgets, newStubTransactionRepo())

	b, _ := budgets.Create(context.Background(), &domain.Budget{
		OwnerID: "owner", Category: "Food", Amount: 100, Period: domain.PeriodMonthly,
	})

	if _, err := svc.Get(context.Background(), b.ID, "intruder"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	amount := 200.0
	if _, err := svc.Update(context.Background(), b.ID, "intruder", ports.BudgetUpdate{Amount: &amount}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("update: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "missing", "owner", ports.BudgetUpdate{Amount: &amount}); !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Fatalf("update: expected ErrBudgetNotFound, got %v", err)
	}

	if err := svc.Delete(context.Background(), b.ID, "intruder"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("delete: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), b.ID, "owner"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}
