package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

// Criterion selects transactions for Filter.
type Criterion interface {
	Validate() error
	Match(tx core.Transaction) bool
}

type (
	ByType struct {
		Type core.TransactionType
	}

	// ByCategory matches the whole category name, ignoring case.
	ByCategory struct {
		Name string
	}

	// ByAmountRange is inclusive on both ends. Min greater than Max matches
	// nothing.
	ByAmountRange struct {
		Min decimal.Decimal
		Max decimal.Decimal
	}

	// ByDateRange is inclusive on both ends.
	ByDateRange struct {
		From core.Date
		To   core.Date
	}
)

func (c ByType) Validate() error {
	if !c.Type.IsValid() {
		return core.ErrInvalidType
	}
	return nil
}

func (c ByType) Match(tx core.Transaction) bool { return tx.Type == c.Type }

func (c ByCategory) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return core.ErrEmptyCategory
	}
	return nil
}

func (c ByCategory) Match(tx core.Transaction) bool {
	return strings.EqualFold(strings.TrimSpace(tx.Category), strings.TrimSpace(c.Name))
}

func (c ByAmountRange) Validate() error { return nil }

func (c ByAmountRange) Match(tx core.Transaction) bool {
	return tx.Amount.GreaterThanOrEqual(c.Min) && tx.Amount.LessThanOrEqual(c.Max)
}

func (c ByDateRange) Validate() error {
	if c.From.IsZero() || c.To.IsZero() {
		return core.ErrInvalidDate
	}
	return nil
}

func (c ByDateRange) Match(tx core.Transaction) bool {
	return !tx.Date.Before(c.From) && !tx.Date.After(c.To)
}

// NewTypeFilter builds a ByType from user input.
func NewTypeFilter(typ string) (ByType, error) {
	t, err := core.ParseType(typ)
	if err != nil {
		return ByType{}, err
	}
	return ByType{Type: t}, nil
}

// NewCategoryFilter builds a ByCategory from user input.
func NewCategoryFilter(name string) (ByCategory, error) {
	c := ByCategory{Name: strings.TrimSpace(name)}
	return c, c.Validate()
}

// NewAmountRangeFilter parses both bounds. Any number is accepted as a bound,
// including negatives and min > max.
func NewAmountRangeFilter(low, high string) (ByAmountRange, error) {
	lo, err := parseBound(low)
	if err != nil {
		return ByAmountRange{}, err
	}
	hi, err := parseBound(high)
	if err != nil {
		return ByAmountRange{}, err
	}
	return ByAmountRange{Min: lo, Max: hi}, nil
}

// NewDateRangeFilter parses both bounds as YYYY-MM-DD.
func NewDateRangeFilter(from, to string) (ByDateRange, error) {
	f, err := core.ParseDate(from)
	if err != nil {
		return ByDateRange{}, err
	}
	t, err := core.ParseDate(to)
	if err != nil {
		return ByDateRange{}, err
	}
	return ByDateRange{From: f, To: t}, nil
}

func parseBound(s string) (decimal.Decimal, error) {
	return core.ParseDecimal(s)
}
