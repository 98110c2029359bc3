package vault

import (
	"errors"
	"testing"

	"moneyvault/internal/domain"
)

func draft(date, ttype string, amount float64) domain.TransactionDraft {
	return domain.TransactionDraft{
		Date:        date,
		Type:        ttype,
		Description: "test entry",
		Amount:      domain.NewAmount(amount),
		Method:      domain.MethodCash,
	}
}

func TestTransactionAdd(t *testing.T) {
	e := newEnv(t)
	admin := e.setup(t)

	tx, err := e.txs.Add(admin, draft("2025-06-01", domain.TransactionIncome, 1000))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if tx.MemberID != admin.ID || tx.MemberName != admin.Name {
		t.Error("transaction not attributed to actor")
	}

	// newest first
	second, _ := e.txs.Add(admin, draft("2025-06-02", domain.TransactionExpense, 250))
	list := e.txs.Query(TransactionFilter{})
	if len(list) != 2 || list[0].ID != second.ID {
		t.Errorf("ledger order wrong: %+v", list)
	}

	if _, err := e.txs.Add(admin, draft("2025-06-01", "transfer", 10)); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("invalid draft = %v, want ErrValidation", err)
	}
	if got := len(e.txs.Query(TransactionFilter{})); got != 2 {
		t.Errorf("rejected draft changed ledger, size = %d", got)
	}

	list2 := e.notes.List()
	if len(list2) == 0 || list2[0].Message != "Transaction added successfully!" {
		t.Errorf("notification head = %+v", list2)
	}
}

func TestTransactionDeleteOwnership(t *testing.T) {
	e := newEnv(t)
	admin := e.setup(t)
	bob := e.addMember(t, "Bob", "5678")
	carol := e.addMember(t, "Carol", "9012")

	bobTx, err := e.txs.Add(bob, draft("2025-06-01", domain.TransactionExpense, 100))
	if err != nil {
		t.Fatal(err)
	}

	// an unrelated member may not delete it, and the ledger stays intact
	if err := e.txs.Delete(carol, bobTx.ID); !errors.Is(err, domain.ErrPermission) {
		t.Errorf("cross-member delete = %v, want ErrPermission", err)
	}
	if got := len(e.txs.Query(TransactionFilter{})); got != 1 {
		t.Errorf("denied delete changed ledger, size = %d", got)
	}

	// the owner may
	if err := e.txs.Delete(bob, bobTx.ID); err != nil {
		t.Errorf("owner delete: %v", err)
	}

	// and the admin may delete anyone's
	carolTx, _ := e.txs.Add(carol, draft("2025-06-02", domain.TransactionIncome, 50))
	if err := e.txs.Delete(admin, carolTx.ID); err != nil {
		t.Errorf("admin delete: %v", err)
	}

	if err := e.txs.Delete(admin, "trans_missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown id = %v, want ErrNotFound", err)
	}
}

func TestTransactionQuery(t *testing.T) {
	e := newEnv(t)
	admin := e.setup(t)
	bob := e.addMember(t, "Bob", "5678")

	e.txs.Add(admin, draft("2025-06-01", domain.TransactionIncome, 1000))
	e.txs.Add(admin, draft("2025-06-10", domain.TransactionExpense, 200))
	e.txs.Add(bob, draft("2025-06-15", domain.TransactionExpense, 300))

	tests := []struct {
		name   string
		filter TransactionFilter
		want   int
	}{
		{"no filter", TransactionFilter{}, 3},
		{"type all", TransactionFilter{Type: "all"}, 3},
		{"income only", TransactionFilter{Type: domain.TransactionIncome}, 1},
		{"by member", TransactionFilter{MemberID: bob.ID}, 1},
		{"member all", TransactionFilter{MemberID: "all"}, 3},
		{"from inclusive", TransactionFilter{From: "2025-06-10"}, 2},
		{"to inclusive", TransactionFilter{To: "2025-06-10"}, 2},
		{"range", TransactionFilter{From: "2025-06-02", To: "2025-06-14"}, 1},
		{"conjunctive", TransactionFilter{Type: domain.TransactionExpense, MemberID: bob.ID}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(e.txs.Query(tt.filter)); got != tt.want {
				t.Errorf("Query(%+v) = %d records, want %d", tt.filter, got, tt.want)
			}
		})
	}
}

func TestTransactionStats(t *testing.T) {
	e := newEnv(t)
	admin := e.setup(t)
	e.txs.Add(admin, draft("2025-06-01", domain.TransactionIncome, 1000.50))
	e.txs.Add(admin, draft("2025-06-02", domain.TransactionIncome, 499.50))
	e.txs.Add(admin, draft("2025-06-03", domain.TransactionExpense, 750.25))

	stats := e.txs.Stats(TransactionFilter{})
	if !stats.TotalIncome.Equal(domain.NewAmount(1500)) {
		t.Errorf("TotalIncome = %s, want 1500", stats.TotalIncome)
	}
	if !stats.TotalExpense.Equal(domain.NewAmount(750.25)) {
		t.Errorf("TotalExpense = %s, want 750.25", stats.TotalExpense)
	}
	if !stats.Balance.Equal(stats.TotalIncome.Sub(stats.TotalExpense)) {
		t.Errorf("Balance = %s, want income - expense", stats.Balance)
	}
	if stats.Count != 3 {
		t.Errorf("Count = %d, want 3", stats.Count)
	}
}

// Historical records persisted by the original app sometimes carry amounts as
// JSON strings; the ledger must load them.
func TestTransactionLoadsStringAmounts(t *testing.T) {
	e := newEnv(t)
	seed := `[{"id":"trans_old","date":"2024-12-01","type":"income","description":"legacy",` +
		`"amount":"250.50","method":"cash","memberId":"user_x","memberName":"X",` +
		`"createdAt":"2024-12-01T10:00:00Z"}]`
	if err := e.store.Set("moneyVault_transactions", seed); err != nil {
		t.Fatal(err)
	}
	if err := e.txs.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	stats := e.txs.Stats(TransactionFilter{})
	if !stats.TotalIncome.Equal(domain.NewAmount(250.5)) {
		t.Errorf("TotalIncome = %s, want 250.5", stats.TotalIncome)
	}
}

func TestTransactionLoadMalformed(t *testing.T) {
	e := newEnv(t)
	if err := e.store.Set("moneyVault_transactions", "{not json"); err != nil {
		t.Fatal(err)
	}
	if err := e.txs.Reload(); !errors.Is(err, domain.ErrFormat) {
		t.Errorf("Reload on garbage = %v, want ErrFormat", err)
	}
}
