package ledger

import (
	"slices"
	"strings"

	"ledger/internal/core"
)

type SortKey string

const (
	SortByType   SortKey = "type"
	SortByAmount SortKey = "amount"
	SortByDate   SortKey = "date"
)

func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case SortByType, SortByAmount, SortByDate:
		return key, nil
	}
	return "", core.ErrInvalidSortKey
}

// Sort returns a new ascending view of the collection. Ties keep insertion
// order. Type compares its labels as plain strings, so Expense sorts first.
func (s *Store) Sort(key SortKey) ([]core.Transaction, error) {
	var cmp func(a, b core.Transaction) int
	switch key {
	case SortByType:
		cmp = func(a, b core.Transaction) int { return strings.Compare(string(a.Type), string(b.Type)) }
	case SortByAmount:
		cmp = func(a, b core.Transaction) int { return a.Amount.Cmp(b.Amount) }
	case SortByDate:
		cmp = func(a, b core.Transaction) int { return a.Date.Compare(b.Date.Time) }
	default:
		return nil, core.ErrInvalidSortKey
	}
	out := s.All()
	slices.SortStableFunc(out, cmp)
	return out, nil
}
