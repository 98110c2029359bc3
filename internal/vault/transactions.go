package vault

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"moneyvault/internal/domain"
	"moneyvault/internal/kv"
)

// TransactionFilter narrows a transaction query. Fields are independently
// optional and conjunctive; "all" (or empty) disables a field. From/To are
// inclusive calendar dates compared against the transaction's date field.
type TransactionFilter struct {
	Type     string
	MemberID string
	From     string
	To       string
}

// TransactionStats aggregates a transaction scope.
type TransactionStats struct {
	TotalIncome  domain.Amount `json:"totalIncome"`
	TotalExpense domain.Amount `json:"totalExpense"`
	Balance      domain.Amount `json:"balance"`
	Count        int           `json:"count"`
}

// Transactions is the income/expense ledger. Records are kept newest-first;
// the persisted order is the display order.
type Transactions struct {
	mu    sync.Mutex
	store kv.Store
	notes *Notifications
	items []domain.Transaction
}

func NewTransactions(store kv.Store, notes *Notifications) (*Transactions, error) {
	t := &Transactions{store: store, notes: notes}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload re-reads the ledger from the store.
func (t *Transactions) Reload() error {
	items, err := loadList[domain.Transaction](t.store, keyTransactions)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.items = items
	t.mu.Unlock()
	return nil
}

// Add validates the draft, stamps attribution from the acting principal and
// inserts the record at the head. The store write happens before the cache
// swap so a failed write leaves the ledger untouched.
func (t *Transactions) Add(actor domain.Principal, draft domain.TransactionDraft) (domain.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return domain.Transaction{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	tx := domain.NewTransaction(actor, draft)
	next := make([]domain.Transaction, 0, len(t.items)+1)
	next = append(next, tx)
	next = append(next, t.items...)
	if err := persistList(t.store, keyTransactions, next); err != nil {
		return domain.Transaction{}, err
	}
	t.items = next
	t.notify("Transaction added successfully!")
	logrus.WithFields(logrus.Fields{"transaction": tx.ID, "member": actor.ID, "type": tx.Type}).Info("transaction added")
	return tx, nil
}

// Delete removes a record. Only an admin or the owning member may delete.
func (t *Transactions) Delete(actor domain.Principal, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := -1
	for i := range t.items {
		if t.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: transaction %s", domain.ErrNotFound, id)
	}
	if !actor.IsAdmin() && t.items[idx].MemberID != actor.ID {
		return fmt.Errorf("%w: you do not have permission to delete this transaction", domain.ErrPermission)
	}
	next := make([]domain.Transaction, 0, len(t.items)-1)
	for _, tx := range t.items {
		if tx.ID != id {
			next = append(next, tx)
		}
	}
	if err := persistList(t.store, keyTransactions, next); err != nil {
		return err
	}
	t.items = next
	t.notify("Transaction deleted successfully!")
	logrus.WithFields(logrus.Fields{"transaction": id, "member": actor.ID}).Info("transaction deleted")
	return nil
}

// Query returns a fresh, ordered slice of the records matching f.
func (t *Transactions) Query(f TransactionFilter) []domain.Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Transaction, 0, len(t.items))
	for _, tx := range t.items {
		if matchTransaction(tx, f) {
			out = append(out, tx)
		}
	}
	return out
}

// Stats sums income and expense over the records matching f.
func (t *Transactions) Stats(f TransactionFilter) TransactionStats {
	return statsOf(t.Query(f))
}

func statsOf(items []domain.Transaction) TransactionStats {
	var stats TransactionStats
	for _, tx := range items {
		if tx.Type == domain.TransactionIncome {
			stats.TotalIncome = stats.TotalIncome.Add(tx.Amount)
		} else {
			stats.TotalExpense = stats.TotalExpense.Add(tx.Amount)
		}
	}
	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpense)
	stats.Count = len(items)
	return stats
}

func matchTransaction(tx domain.Transaction, f TransactionFilter) bool {
	if f.Type != "" && f.Type != "all" && tx.Type != f.Type {
		return false
	}
	if f.MemberID != "" && f.MemberID != "all" && tx.MemberID != f.MemberID {
		return false
	}
	if f.From == "" && f.To == "" {
		return true
	}
	date, err := domain.ParseDate(tx.Date)
	if err != nil {
		return false
	}
	if f.From != "" {
		from, err := domain.ParseDate(f.From)
		if err != nil || date.Before(from) {
			return false
		}
	}
	if f.To != "" {
		to, err := domain.ParseDate(f.To)
		if err != nil || date.After(to) {
			return false
		}
	}
	return true
}

func (t *Transactions) notify(message string) {
	if t.notes == nil {
		return
	}
	if _, err := t.notes.Push(message, "success"); err != nil {
		logrus.WithError(err).Warn("failed to record notification")
	}
}
