package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

// In-memory repository stubs shared across the service tests. They mirror
// the conditional-write semantics of the Mongo implementations: mutations
// match on both id and owner.

type stubUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *upd.Email {
				return nil, domain.ErrUserExists
			}
		}
		u.Email = *upd.Email
	}
	if upd.Currency != nil {
		u.Currency = *upd.Currency
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubTransactionRepo struct {
	seq int
	txs map[string]*domain.Transaction
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{txs: make(map[string]*domain.Transaction)}
}

func cloneTx(t *domain.Transaction) *domain.Transaction {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTransactionRepo) Create(_ context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	r.seq++
	clone := cloneTx(t)
	clone.ID = fmt.Sprintf("tx-%d", r.seq)
	r.txs[clone.ID] = cloneTx(clone)
	return clone, nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id string) (*domain.Transaction, error) {
	t, ok := r.txs[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return cloneTx(t), nil
}

func (r *stubTransactionRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Transaction, error) {
	out := make([]*domain.Transaction, 0)
	for _, t := range r.txs {
		if t.OwnerID == ownerID {
			out = append(out, cloneTx(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *stubTransactionRepo) UpdateOwned(_ context.Context, id, ownerID string, upd ports.TransactionUpdate) (*domain.Transaction, error) {
	t, ok := r.txs[id]
	if !ok || t.OwnerID != ownerID {
		return nil, domain.ErrTransactionNotFound
	}
	if upd.Type != nil {
		t.Type = *upd.Type
	}
	if upd.Amount != nil {
		t.Amount = *upd.Amount
	}
	if upd.Category != nil {
		t.Category = *upd.Category
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Date != nil {
		t.Date = *upd.Date
	}
	if upd.Tags != nil {
		t.Tags = *upd.Tags
	}
	if upd.Recurring != nil {
		t.Recurring = *upd.Recurring
	}
	if upd.Currency != nil {
		t.Currency = *upd.Currency
	}
	if upd.ExchangeRate != nil {
		t.ExchangeRate = *upd.ExchangeRate
	}
	return cloneTx(t), nil
}

func (r *stubTransactionRepo) DeleteOwned(_ context.Context, id, ownerID string) error {
	t, ok := r.txs[id]
	if !ok || t.OwnerID != ownerID {
		return domain.ErrTransactionNotFound
	}
	delete(r.txs, id)
	return nil
}

func (r *stubTransactionRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	for id, t := range r.txs {
		if t.OwnerID == ownerID {
			delete(r.txs, id)
		}
	}
	return nil
}

func (r *stubTransactionRepo) MonthlyStats(_ context.Context, ownerID string) ([]ports.MonthlyStat, error) {
	type key struct {
		year, month int
		typ         domain.TransactionType
	}
	buckets := make(map[key]float64)
	for _, t := range r.txs {
		if t.OwnerID != ownerID {
			continue
		}
		k := key{t.Date.Year(), int(t.Date.Month()), t.Type}
		buckets[k] += t.Amount
	}
	out := make([]ports.MonthlyStat, 0, len(buckets))
	for k, total := range buckets {
		out = append(out, ports.MonthlyStat{Year: k.year, Month: k.month, Type: k.typ, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}

func (r *stubTransactionRepo) SumExpenses(_ context.Context, ownerID, category string, from, to time.Time) (float64, error) {
	var total float64
	for _, t := range r.txs {
		if t.OwnerID != ownerID || t.Type != domain.TypeExpense || t.Category != category {
			continue
		}
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		total += t.Amount
	}
	return total, nil
}

func (r *stubTransactionRepo) ExpensesByCategory(_ context.Context, ownerID string, from time.Time) ([]ports.CategoryTotal, error) {
	totals := make(map[string]float64)
	for _, t := range r.txs {
		if t.OwnerID != ownerID || t.Type != domain.TypeExpense || t.Date.Before(from) {
			continue
		}
		totals[t.Category] += t.Amount
	}
	out := make([]ports.CategoryTotal, 0, len(totals))
	for name, value := range totals {
		out = append(out, ports.CategoryTotal{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out, nil
}

type stubBudgetRepo struct {
	seq     int
	budgets map[string]*domain.Budget
}

func newStubBudgetRepo() *stubBudgetRepo {
	return &stubBudgetRepo{budgets: make(map[string]*domain.Budget)}
}

func cloneBudget(b *domain.Budget) *domain.Budget {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

func (r *stubBudgetRepo) Create(_ context.Context, b *domain.Budget) (*domain.Budget, error) {
	r.seq++
	clone := cloneBudget(b)
	clone.ID = fmt.Sprintf("budget-%d", r.seq)
	r.budgets[clone.ID] = cloneBudget(clone)
	return clone, nil
}

func (r *stubBudgetRepo) FindByID(_ context.Context, id string) (*domain.Budget, error) {
	b, ok := r.budgets[id]
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}
	return cloneBudget(b), nil
}

func (r *stubBudgetRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Budget, error) {
	out := make([]*domain.Budget, 0)
	for _, b := range r.budgets {
		if b.OwnerID == ownerID {
			out = append(out, cloneBudget(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubBudgetRepo) ListByOwnerCategory(_ context.Context, ownerID, category string) ([]*domain.Budget, error) {
	out := make([]*domain.Budget, 0)
	for _, b := range r.budgets {
		if b.OwnerID == ownerID && b.Category == category {
			out = append(out, cloneBudget(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubBudgetRepo) UpdateOwned(_ context.Context, id, ownerID string, upd ports.BudgetUpdate) (*domain.Budget, error) {
	b, ok := r.budgets[id]
	if !ok || b.OwnerID != ownerID {
		return nil, domain.ErrBudgetNotFound
	}
	if upd.Category != nil {
		b.Category = *upd.Category
	}
	if upd.Amount != nil {
		b.Amount = *upd.Amount
	}
	if upd.Period != nil {
		b.Period = *upd.Period
	}
	if upd.StartDate != nil {
		b.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		b.EndDate = *upd.EndDate
	}
	if upd.Currency != nil {
		b.Currency = *upd.Currency
	}
	if upd.AlertThreshold != nil {
		b.AlertThreshold = *upd.AlertThreshold
	}
	return cloneBudget(b), nil
}

func (r *stubBudgetRepo) DeleteOwned(_ context.Context, id, ownerID string) error {
	b, ok := r.budgets[id]
	if !ok || b.OwnerID != ownerID {
		return domain.ErrBudgetNotFound
	}
	delete(r.budgets, id)
	return nil
}

func (r *stubBudgetRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	for id, b := range r.budgets {
		if b.OwnerID == ownerID {
			delete(r.budgets, id)
		}
	}
	return nil
}

type stubGoalRepo struct {
	seq   int
	goals map[string]*domain.Goal
}

func newStubGoalRepo() *stubGoalRepo {
	return &stubGoalRepo{goals: make(map[string]*domain.Goal)}
}

func cloneGoal(g *domain.Goal) *domain.Goal {
	if g == nil {
		return nil
	}
	clone := *g
	return &clone
}

func (r *stubGoalRepo) Create(_ context.Context, g *domain.Goal) (*domain.Goal, error) {
	r.seq++
	clone := cloneGoal(g)
	clone.ID = fmt.Sprintf("goal-%d", r.seq)
	r.goals[clone.ID] = cloneGoal(clone)
	return clone, nil
}

func (r *stubGoalRepo) FindByID(_ context.Context, id string) (*domain.Goal, error) {
	g, ok := r.goals[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	return cloneGoal(g), nil
}

func (r *stubGoalRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Goal, error) {
	out := make([]*domain.Goal, 0)
	for _, g := range r.goals {
		if g.OwnerID == ownerID {
			out = append(out, cloneGoal(g))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TargetDate.Before(out[j].TargetDate) })
	return out, nil
}

func (r *stubGoalRepo) UpdateOwned(_ context.Context, id, ownerID string, upd ports.GoalUpdate) (*domain.Goal, error) {
	g, ok := r.goals[id]
	if !ok || g.OwnerID != ownerID {
		return nil, domain.ErrGoalNotFound
	}
	if upd.Name != nil {
		g.Name = *upd.Name
	}
	if upd.TargetAmount != nil {
		g.TargetAmount = *upd.TargetAmount
	}
	if upd.CurrentAmount != nil {
		g.CurrentAmount = *upd.CurrentAmount
	}
	if upd.StartDate != nil {
		g.StartDate = *upd.StartDate
	}
	if upd.TargetDate != nil {
		g.TargetDate = *upd.TargetDate
	}
	if upd.Category != nil {
		g.Category = *upd.Category
	}
	if upd.Priority != nil {
		g.Priority = *upd.Priority
	}
	if upd.Status != nil {
		g.Status = *upd.Status
	}
	if upd.Currency != nil {
		g.Currency = *upd.Currency
	}
	if upd.AutoAllocatePercent != nil {
		g.AutoAllocatePercent = *upd.AutoAllocatePercent
	}
	if upd.Notes != nil {
		g.Notes = *upd.Notes
	}
	return cloneGoal(g), nil
}

func (r *stubGoalRepo) DeleteOwned(_ context.Context, id, ownerID string) error {
	g, ok := r.goals[id]
	if !ok || g.OwnerID != ownerID {
		return domain.ErrGoalNotFound
	}
	delete(r.goals, id)
	return nil
}

func (r *stubGoalRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	for id, g := range r.goals {
		if g.OwnerID == ownerID {
			delete(r.goals, id)
		}
	}
	return nil
}

type stubAlertQueue struct {
	mu   sync.Mutex
	jobs []ports.BudgetAlertJob
}

func (q *stubAlertQueue) Enqueue(job ports.BudgetAlertJob) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
}

func (q *stubAlertQueue) all() []ports.BudgetAlertJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]ports.BudgetAlertJob(nil), q.jobs...)
}

type stubDeduper struct {
	sent map[string]bool
	err  error
}

func newStubDeduper() *stubDeduper {
	return &stubDeduper{sent: make(map[string]bool)}
}

func dedupKey(budgetID string, periodStart time.Time) string {
	return fmt.Sprintf("%s:%d", budgetID, periodStart.Unix())
}

func (d *stubDeduper) AlreadySent(_ context.Context, budgetID string, periodStart time.Time) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.sent[dedupKey(budgetID, periodStart)], nil
}

func (d *stubDeduper) MarkSent(_ context.Context, budgetID string, periodStart time.Time, _ time.Duration) error {
	if d.err != nil {
		return d.err
	}
	d.sent[dedupKey(budgetID, periodStart)] = true
	return nil
}
