package service

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
)

func TestDashboardService_Summary(t *testing.T) {
	repo := newStubTransactionRepo()
	svc := NewDashboardService(repo)

	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	ctx := context.Background()
	seed := []struct {
		typ      domain.TransactionType
		amount   float64
		category string
		date     time.Time
	}{
		// Current month.
		{domain.TypeIncome, 1000, "Salary", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{domain.TypeExpense, 200, "Food", time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)},
		{domain.TypeExpense, 100, "Transportation", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)},
		// Previous month: counts toward the balance only.
		{domain.TypeIncome, 500, "Freelance", time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)},
		{domain.TypeExpense, 50, "Food", time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)},
	}
	for _, s := range seed {
		_, _ = repo.Create(ctx, &domain.Transaction{
			OwnerID: "user-1", Type: s.typ, Amount: s.amount, Category: s.category, Date: s.date,
		})
	}
	// Another user's records never leak into the summary.
	_, _ = repo.Create(ctx, &domain.Transaction{
		OwnerID: "user-2", Type: domain.TypeIncome, Amount: 9999, Category: "Salary", Date: now,
	})

	summary, err := svc.Summary(ctx, "user-1")
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	if summary.TotalBalance != 1150 {
		t.Fatalf("expected balance 1150, got %v", summary.TotalBalance)
	}
	if summary.MonthlyIncome != 1000 {
		t.Fatalf("expected monthly income 1000, got %v", summary.MonthlyIncome)
	}
	if summary.MonthlyExpenses != 300 {
		t.Fatalf("expected monthly expenses 300, got %v", summary.MonthlyExpenses)
	}
	if len(summary.RecentTransactions) != 5 {
		t.Fatalf("expected 5 recent transactions, got %d", len(summary.RecentTransactions))
	}
	// Newest first.
	if summary.RecentTransactions[0].Category != "Transportation" {
		t.Fatalf("expected newest transaction first, got %q", summary.RecentTransactions[0].Category)
	}

	if len(summary.CategoryExpenses) != 2 {
		t.Fatalf("expected 2 expense categories this month, got %d", len(summary.CategoryExpenses))
	}
	if summary.CategoryExpenses[0].Name != "Food" || summary.CategoryExpenses[0].Value != 200 {
		t.Fatalf("unexpected top category: %+v", summary.CategoryExpenses[0])
	}
}

func TestDashboardService_Summary_RecentCapped(t *testing.T) {
	repo := newStubTransactionRepo()
	svc := NewDashboardService(repo)

	ctx := context.Background()
	for i := 0; i < 8; i++ {
		_, _ = repo.Create(ctx, &domain.Transaction{
			OwnerID: "user-1", Type: domain.TypeExpense, Amount: 10, Category: "Food",
			Date: time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.UTC),
		})
	}

	summary, err := svc.Summary(ctx, "user-1")
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if len(summary.RecentTransactions) != 5 {
		t.Fatalf("expected recent list capped at 5, got %d", len(summary.RecentTransactions))
	}
}

func TestDashboardService_Summary_Empty(t *testing.T) {
	svc := NewDashboardService(newStubTransactionRepo())

	summary, err := svc.Summary(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.TotalBalance != 0 || summary.MonthlyIncome != 0 || summary.MonthlyExpenses != 0 {
		t.Fatalf("expected zeroed summary, got %+v", summary)
	}
	if len(summary.RecentTransactions) != 0 {
		t.Fatalf("expected no recent transactions, got %d", len(summary.RecentTransactions))
	}
}
