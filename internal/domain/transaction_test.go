package domain

import (
	"errors"
	"testing"
)

func validDraft() TransactionDraft {
	return TransactionDraft{
		Date:        "2025-06-15",
		Type:        TransactionIncome,
		Description: "salary",
		Amount:      NewAmount(1000),
		Method:      MethodCash,
	}
}

func TestTransactionDraftValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TransactionDraft)
		wantOK bool
	}{
		{"valid cash", func(d *TransactionDraft) {}, true},
		{"valid online with bank", func(d *TransactionDraft) {
			d.Method = MethodOnline
			d.Bank = "HDFC"
		}, true},
		{"missing date", func(d *TransactionDraft) { d.Date = "" }, false},
		{"bad date", func(d *TransactionDraft) { d.Date = "15-06-2025" }, false},
		{"blank description", func(d *TransactionDraft) { d.Description = "   " }, false},
		{"zero amount", func(d *TransactionDraft) { d.Amount = NewAmount(0) }, false},
		{"negative amount", func(d *TransactionDraft) { d.Amount = NewAmount(-5) }, false},
		{"unknown type", func(d *TransactionDraft) { d.Type = "transfer" }, false},
		{"unknown method", func(d *TransactionDraft) { d.Method = "cheque" }, false},
		{"online without bank", func(d *TransactionDraft) { d.Method = MethodOnline }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.wantOK && !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() = %v, want ErrValidation", err)
			}
		})
	}
}

func TestNewTransactionDropsBankForCash(t *testing.T) {
	actor := NewPrincipal("Alice", "1234", RoleAdmin)

	d := validDraft()
	d.Bank = "HDFC" // ignored for cash
	tx := NewTransaction(actor, d)
	if tx.Bank != "" {
		t.Errorf("cash transaction kept bank %q", tx.Bank)
	}
	if tx.MemberID != actor.ID || tx.MemberName != actor.Name {
		t.Error("transaction not attributed to actor")
	}

	d.Method = MethodOnline
	tx = NewTransaction(actor, d)
	if tx.Bank != "HDFC" {
		t.Errorf("online transaction bank = %q, want HDFC", tx.Bank)
	}
}
