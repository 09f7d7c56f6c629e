package storage

import (
	"fmt"
	"strings"

	"ledger/internal/core"
)

// Header is the fixed field order of every persisted record.
var Header = []string{"ID", "Type", "Category", "Amount", "Date", "Note"}

// record is the flat text form shared by all codecs.
type record struct {
	ID       string
	Type     string
	Category string
	Amount   string
	Date     string
	Note     string
}

func toRecord(tx core.Transaction) record {
	return record{
		ID:       tx.ID,
		Type:     tx.Type.String(),
		Category: tx.Category,
		Amount:   core.FormatAmount(tx.Amount),
		Date:     tx.Date.String(),
		Note:     tx.Note,
	}
}

func (r record) fields() []string {
	return []string{r.ID, r.Type, r.Category, r.Amount, r.Date, r.Note}
}

func recordFromFields(f []string) (record, error) {
	if len(f) != len(Header) {
		return record{}, fmt.Errorf("expected %d fields, got %d", len(Header), len(f))
	}
	return record{ID: f[0], Type: f[1], Category: f[2], Amount: f[3], Date: f[4], Note: f[5]}, nil
}

func (r record) transaction() (core.Transaction, error) {
	typ, err := core.ParseType(r.Type)
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseAmount(r.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	tx := core.Transaction{
		ID:       strings.TrimSpace(r.ID),
		Type:     typ,
		Category: strings.TrimSpace(r.Category),
		Amount:   amount,
		Date:     date,
		Note:     r.Note,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

// decodeRecords converts every record or fails on the first bad one.
func decodeRecords(records []record) ([]core.Transaction, error) {
	out := make([]core.Transaction, 0, len(records))
	for i, r := range records {
		tx, err := r.transaction()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		out = append(out, tx)
	}
	return out, nil
}
