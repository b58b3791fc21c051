package domain

import (
	"testing"
	"time"
)

func TestBudgetPeriod_Start(t *testing.T) {
	// Friday, 2025-06-20.
	now := time.Date(2025, 6, 20, 15, 30, 45, 0, time.UTC)

	cases := []struct {
		period BudgetPeriod
		want   time.Time
	}{
		{PeriodDaily, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)},
		{PeriodWeekly, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)}, // most recent Sunday
		{PeriodMonthly, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodYearly, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := tc.period.Start(now); !got.Equal(tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.period, got, tc.want)
		}
	}
}

func TestBudgetPeriod_Start_OnSunday(t *testing.T) {
	// A Sunday is its own week start.
	sunday := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := PeriodWeekly.Start(sunday); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBudgetPeriod_Valid(t *testing.T) {
	for _, p := range []BudgetPeriod{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly} {
		if !p.Valid() {
			t.Fatalf("%s should be valid", p)
		}
	}
	if BudgetPeriod("fortnightly").Valid() {
		t.Fatalf("unknown period should be invalid")
	}
}
