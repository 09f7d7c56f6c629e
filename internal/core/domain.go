package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the text form of a Date wherever it is persisted or typed in.
const DateLayout = "2006-01-02"

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

type (
	TransactionType string

	// Date is a calendar date held as UTC midnight.
	Date struct {
		time.Time
	}

	Transaction struct {
		ID       string
		Type     TransactionType
		Category string
		Amount   decimal.Decimal
		Date     Date
		Note     string
	}

	// DuplicateKey is the normalized identity of a transaction. Two
	// transactions with equal keys are the same entry regardless of note.
	DuplicateKey struct {
		Type     string
		Category string
		Amount   string
		Date     string
	}
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Before reports whether d is an earlier calendar day than o.
func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }

// After reports whether d is a later calendar day than o.
func (d Date) After(o Date) bool { return d.Time.After(o.Time) }

// ParseType accepts "income" or "expense" in any letter case.
func ParseType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	}
	return "", ErrInvalidType
}

func (t TransactionType) String() string { return string(t) }

func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

func (t Transaction) IsIncome() bool  { return t.Type == Income }
func (t Transaction) IsExpense() bool { return t.Type == Expense }

// Key returns the normalized duplicate-detection key.
func (t Transaction) Key() DuplicateKey {
	return DuplicateKey{
		Type:     strings.ToLower(string(t.Type)),
		Category: strings.ToLower(strings.TrimSpace(t.Category)),
		Amount:   t.Amount.StringFixed(2),
		Date:     t.Date.String(),
	}
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}
	return t.Date.Validate()
}

// DisplayCategory capitalizes a category for display: first letter upper,
// the rest lower. Stored categories are never rewritten.
func DisplayCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}
	r := []rune(strings.ToLower(category))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
