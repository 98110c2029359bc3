package vault

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"moneyvault/internal/domain"
)

// localeLayout approximates the original app's toLocaleString rendering.
const localeLayout = "1/2/2006, 3:04:05 PM"

// ExportCSV writes the row-per-transaction projection followed by the
// summary block. Amounts are rendered as currency strings with two decimal
// places and thousands separators.
func (t *Transactions) ExportCSV(w io.Writer, now time.Time) error {
	t.mu.Lock()
	items := make([]domain.Transaction, len(t.items))
	copy(items, t.items)
	t.mu.Unlock()

	cw := csv.NewWriter(w)
	rows := [][]string{
		{"Date", "Member", "Description", "Type", "Method", "Bank", "Amount", "Created At"},
	}
	for _, tx := range items {
		bank := "-"
		if tx.Bank != "" {
			bank = strings.ToUpper(tx.Bank)
		}
		rows = append(rows, []string{
			tx.Date,
			tx.MemberName,
			tx.Description,
			tx.Type,
			tx.Method,
			bank,
			tx.Amount.Display(),
			tx.CreatedAt.Format(localeLayout),
		})
	}

	stats := statsOf(items)
	rows = append(rows,
		[]string{},
		[]string{"Summary Report"},
		[]string{"Generated on", now.Format(localeLayout)},
		[]string{},
		[]string{"Total Income", stats.TotalIncome.Display()},
		[]string{"Total Expense", stats.TotalExpense.Display()},
		[]string{"Balance", stats.Balance.Display()},
		[]string{"Total Transactions", strconv.Itoa(stats.Count)},
	)

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
