package storage

import (
	"testing"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

// view flattens a transaction so amounts compare by value, not representation.
type view struct {
	ID, Type, Category, Amount, Date, Note string
}

func views(txs []core.Transaction) []view {
	out := make([]view, 0, len(txs))
	for _, tx := range txs {
		r := toRecord(tx)
		out = append(out, view{r.ID, r.Type, r.Category, r.Amount, r.Date, r.Note})
	}
	return out
}

func sample(t *testing.T) []core.Transaction {
	t.Helper()
	return []core.Transaction{
		{ID: "a1b2c3d4", Type: core.Income, Category: "Salary", Amount: decimal.RequireFromString("1000"), Date: core.NewDate(2024, 1, 31), Note: "january"},
		{ID: "e5f6a7b8", Type: core.Expense, Category: "Food", Amount: decimal.RequireFromString("12.5"), Date: core.NewDate(2024, 1, 1), Note: "lunch, with \"friends\""},
		{ID: "c9d0e1f2", Type: core.Expense, Category: "yes", Amount: decimal.RequireFromString("0.1"), Date: core.NewDate(2023, 12, 24), Note: ""},
		{ID: "0a1b2c3d", Type: core.Expense, Category: "123", Amount: decimal.RequireFromString("99.999"), Date: core.NewDate(2024, 2, 29), Note: "multi\nline"},
	}
}
