package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transaction types and payment methods
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"

	MethodCash   = "cash"
	MethodOnline = "online"
)

// Transaction is a single income or expense record. It is immutable once
// created; the only lifecycle operation after creation is deletion.
// MemberID/MemberName snapshot the creating principal and deliberately
// survive that principal's deletion.
type Transaction struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Amount      Amount    `json:"amount"`
	Method      string    `json:"method"`
	Bank        string    `json:"bank,omitempty"`
	MemberID    string    `json:"memberId"`
	MemberName  string    `json:"memberName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TransactionDraft is the boundary input for a new transaction, validated
// once before any mutation happens.
type TransactionDraft struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
	Method      string `json:"method"`
	Bank        string `json:"bank"`
}

func (d TransactionDraft) Validate() error {
	if d.Date == "" || strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("%w: please fill all required fields", ErrValidation)
	}
	if _, err := ParseDate(d.Date); err != nil {
		return err
	}
	if !d.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0", ErrValidation)
	}
	if d.Type != TransactionIncome && d.Type != TransactionExpense {
		return fmt.Errorf("%w: type must be income or expense", ErrValidation)
	}
	switch d.Method {
	case MethodCash:
	case MethodOnline:
		if strings.TrimSpace(d.Bank) == "" {
			return fmt.Errorf("%w: bank is required for online transactions", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: method must be cash or online", ErrValidation)
	}
	return nil
}

// NewTransaction builds the stored record from a validated draft, stamping
// id, owner attribution and creation time. Bank is kept only for online
// payments.
func NewTransaction(actor Principal, d TransactionDraft) Transaction {
	bank := ""
	if d.Method == MethodOnline {
		bank = strings.TrimSpace(d.Bank)
	}
	return Transaction{
		ID:          "trans_" + uuid.NewString(),
		Date:        d.Date,
		Type:        d.Type,
		Description: strings.TrimSpace(d.Description),
		Amount:      d.Amount,
		Method:      d.Method,
		Bank:        bank,
		MemberID:    actor.ID,
		MemberName:  actor.Name,
		CreatedAt:   time.Now().UTC(),
	}
}
