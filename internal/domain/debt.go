package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Debt directions and statuses
const (
	DebtBorrowed = "borrowed"
	DebtLent     = "lent"

	DebtPending = "pending"
	DebtOverdue = "overdue"
	DebtPaid    = "paid"
)

// Debt is an interpersonal borrow/lend record. Unlike transactions, debts
// are shared: they carry no principal reference and any authenticated
// principal may update or delete them.
type Debt struct {
	ID          string    `json:"id"`
	PersonName  string    `json:"personName"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Amount      Amount    `json:"amount"`
	DueDate     string    `json:"dueDate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DebtDraft is the boundary input for a new debt. Any requested status is
// ignored: new debts always start pending.
type DebtDraft struct {
	PersonName  string `json:"personName"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
	DueDate     string `json:"dueDate"`
}

func (d DebtDraft) Validate() error {
	if strings.TrimSpace(d.PersonName) == "" || strings.TrimSpace(d.Description) == "" || d.DueDate == "" {
		return fmt.Errorf("%w: please fill all required fields", ErrValidation)
	}
	if _, err := ParseDate(d.DueDate); err != nil {
		return err
	}
	if !d.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0", ErrValidation)
	}
	if d.Type != DebtBorrowed && d.Type != DebtLent {
		return fmt.Errorf("%w: type must be borrowed or lent", ErrValidation)
	}
	return nil
}

// NewDebt builds the stored record from a validated draft.
func NewDebt(d DebtDraft) Debt {
	return Debt{
		ID:          "debt_" + uuid.NewString(),
		PersonName:  strings.TrimSpace(d.PersonName),
		Type:        d.Type,
		Description: strings.TrimSpace(d.Description),
		Amount:      d.Amount,
		DueDate:     d.DueDate,
		Status:      DebtPending,
		CreatedAt:   time.Now().UTC(),
	}
}

// DebtPatch is a partial update; nil fields are left unchanged. Status
// changes are merged as requested, transition legality is not enforced
// here: the automatic sweep only ever moves pending to overdue, and manual
// edits stay unconstrained on purpose.
type DebtPatch struct {
	PersonName  *string `json:"personName"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	Amount      *Amount `json:"amount"`
	DueDate     *string `json:"dueDate"`
	Status      *string `json:"status"`
}

func (p DebtPatch) Validate() error {
	if p.PersonName != nil && strings.TrimSpace(*p.PersonName) == "" {
		return fmt.Errorf("%w: person name cannot be empty", ErrValidation)
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrValidation)
	}
	if p.Amount != nil && !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0", ErrValidation)
	}
	if p.Type != nil && *p.Type != DebtBorrowed && *p.Type != DebtLent {
		return fmt.Errorf("%w: type must be borrowed or lent", ErrValidation)
	}
	if p.DueDate != nil {
		if _, err := ParseDate(*p.DueDate); err != nil {
			return err
		}
	}
	if p.Status != nil {
		switch *p.Status {
		case DebtPending, DebtOverdue, DebtPaid:
		default:
			return fmt.Errorf("%w: status must be pending, overdue or paid", ErrValidation)
		}
	}
	return nil
}

// Apply merges the patch into d.
func (p DebtPatch) Apply(d *Debt) {
	if p.PersonName != nil {
		d.PersonName = strings.TrimSpace(*p.PersonName)
	}
	if p.Type != nil {
		d.Type = *p.Type
	}
	if p.Description != nil {
		d.Description = strings.TrimSpace(*p.Description)
	}
	if p.Amount != nil {
		d.Amount = *p.Amount
	}
	if p.DueDate != nil {
		d.DueDate = *p.DueDate
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
}
