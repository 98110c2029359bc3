package vault

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"moneyvault/internal/domain"
	"moneyvault/internal/kv"
)

// DebtFilter narrows a debt query; "all" (or empty) disables a field.
type DebtFilter struct {
	Type   string
	Status string
}

// DebtStats aggregates unpaid debts by direction.
type DebtStats struct {
	TotalOwed  domain.Amount `json:"totalOwed"`
	TotalLent  domain.Amount `json:"totalLent"`
	NetBalance domain.Amount `json:"netBalance"`
}

// Debts is the shared borrow/lend ledger. Records are not tied to a
// principal; any authenticated principal may mutate them.
type Debts struct {
	mu    sync.Mutex
	store kv.Store
	notes *Notifications
	items []domain.Debt
}

func NewDebts(store kv.Store, notes *Notifications) (*Debts, error) {
	d := &Debts{store: store, notes: notes}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload re-reads the ledger from the store.
func (d *Debts) Reload() error {
	items, err := loadList[domain.Debt](d.store, keyDebts)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.items = items
	d.mu.Unlock()
	return nil
}

// Add validates the draft and inserts at the head. New debts always start
// pending.
func (d *Debts) Add(draft domain.DebtDraft) (domain.Debt, error) {
	if err := draft.Validate(); err != nil {
		return domain.Debt{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	debt := domain.NewDebt(draft)
	next := make([]domain.Debt, 0, len(d.items)+1)
	next = append(next, debt)
	next = append(next, d.items...)
	if err := persistList(d.store, keyDebts, next); err != nil {
		return domain.Debt{}, err
	}
	d.items = next
	d.notify("Debt record added successfully!")
	logrus.WithFields(logrus.Fields{"debt": debt.ID, "type": debt.Type}).Info("debt added")
	return debt, nil
}

// Update shallow-merges the patch into an existing debt.
func (d *Debts) Update(id string, patch domain.DebtPatch) (domain.Debt, error) {
	if err := patch.Validate(); err != nil {
		return domain.Debt{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	idx := d.indexLocked(id)
	if idx == -1 {
		return domain.Debt{}, fmt.Errorf("%w: debt %s", domain.ErrNotFound, id)
	}
	next := make([]domain.Debt, len(d.items))
	copy(next, d.items)
	patch.Apply(&next[idx])
	if err := persistList(d.store, keyDebts, next); err != nil {
		return domain.Debt{}, err
	}
	d.items = next
	if patch.Status != nil && *patch.Status == domain.DebtPaid {
		d.notify("Debt marked as paid!")
	}
	return next[idx], nil
}

// Delete removes a debt unconditionally; unlike transactions there is no
// ownership check.
func (d *Debts) Delete(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.indexLocked(id) == -1 {
		return fmt.Errorf("%w: debt %s", domain.ErrNotFound, id)
	}
	next := make([]domain.Debt, 0, len(d.items)-1)
	for _, debt := range d.items {
		if debt.ID != id {
			next = append(next, debt)
		}
	}
	if err := persistList(d.store, keyDebts, next); err != nil {
		return err
	}
	d.items = next
	d.notify("Debt record deleted!")
	return nil
}

// Query returns a fresh slice of the debts matching f.
func (d *Debts) Query(f DebtFilter) []domain.Debt {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.Debt, 0, len(d.items))
	for _, debt := range d.items {
		if f.Type != "" && f.Type != "all" && debt.Type != f.Type {
			continue
		}
		if f.Status != "" && f.Status != "all" && debt.Status != f.Status {
			continue
		}
		out = append(out, debt)
	}
	return out
}

// Stats sums unpaid debts by direction; netBalance = lent - owed.
func (d *Debts) Stats() DebtStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	var stats DebtStats
	for _, debt := range d.items {
		if debt.Status == domain.DebtPaid {
			continue
		}
		switch debt.Type {
		case domain.DebtBorrowed:
			stats.TotalOwed = stats.TotalOwed.Add(debt.Amount)
		case domain.DebtLent:
			stats.TotalLent = stats.TotalLent.Add(debt.Amount)
		}
	}
	stats.NetBalance = stats.TotalLent.Sub(stats.TotalOwed)
	return stats
}

// SweepOverdue moves every pending debt whose due date is strictly before
// today (midnight, local to now) to overdue. Idempotent: a second sweep
// with no newly-late debts changes nothing. Returns the number of debts
// transitioned.
func (d *Debts) SweepOverdue(now time.Time) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	today := domain.Midnight(now, now.Location())
	next := make([]domain.Debt, len(d.items))
	copy(next, d.items)
	changed := 0
	for i := range next {
		if next[i].Status != domain.DebtPending {
			continue
		}
		parsed, err := domain.ParseDate(next[i].DueDate)
		if err != nil {
			logrus.WithField("debt", next[i].ID).Warn("skipping debt with malformed due date")
			continue
		}
		due := domain.Midnight(parsed, now.Location())
		if due.Before(today) {
			next[i].Status = domain.DebtOverdue
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := persistList(d.store, keyDebts, next); err != nil {
		return 0, err
	}
	d.items = next
	logrus.WithField("count", changed).Info("debts marked overdue")
	return changed, nil
}

func (d *Debts) indexLocked(id string) int {
	for i := range d.items {
		if d.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Debts) notify(message string) {
	if d.notes == nil {
		return
	}
	if _, err := d.notes.Push(message, "success"); err != nil {
		logrus.WithError(err).Warn("failed to record notification")
	}
}
