// Package ledger holds the in-memory transaction store and every query and
// aggregation over it. A Store is owned by a single caller and is not safe for
// concurrent use.
package ledger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

// Entry is the input of Add.
type Entry struct {
	Type     core.TransactionType
	Category string
	Amount   decimal.Decimal
	Date     core.Date
	Note     string
}

// EditInput carries optional replacements. A nil or blank field keeps the
// current value. Amount and Date are raw text and parsed by Edit.
type EditInput struct {
	Category *string
	Amount   *string
	Date     *string
	Note     *string
}

type Store struct {
	items []core.Transaction
	newID func() string
}

type Option func(*Store)

// WithIDGenerator replaces the random short-id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(opts ...Option) *Store {
	s := &Store{newID: shortID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func shortID() string {
	return uuid.NewString()[:8]
}

// Replace installs txs as the whole collection, in the given order.
func (s *Store) Replace(txs []core.Transaction) {
	s.items = append([]core.Transaction(nil), txs...)
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []core.Transaction {
	return append([]core.Transaction(nil), s.items...)
}

func (s *Store) Len() int { return len(s.items) }

// Find returns the transaction with the given id, ignoring case.
func (s *Store) Find(id string) (core.Transaction, error) {
	i := s.indexOf(id)
	if i < 0 {
		return core.Transaction{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return s.items[i], nil
}

// Add appends a new transaction unless an equal one (type, category, amount
// to two decimals, date) is already stored.
func (s *Store) Add(e Entry) (core.Transaction, error) {
	tx := core.Transaction{
		ID:       s.uniqueID(),
		Type:     e.Type,
		Category: strings.TrimSpace(e.Category),
		Amount:   e.Amount,
		Date:     e.Date,
		Note:     strings.TrimSpace(e.Note),
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	key := tx.Key()
	for _, existing := range s.items {
		if existing.Key() == key {
			return core.Transaction{}, fmt.Errorf("%w: matches %s", core.ErrDuplicate, existing.ID)
		}
	}

	s.items = append(s.items, tx)
	return tx, nil
}

// Delete removes the first transaction whose id matches, ignoring case.
func (s *Store) Delete(id string) (core.Transaction, error) {
	i := s.indexOf(id)
	if i < 0 {
		return core.Transaction{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	return removed, nil
}

// Edit updates category, amount, date and note in place. Every provided field
// is parsed before anything changes. Duplicates are not re-checked.
func (s *Store) Edit(id string, in EditInput) (core.Transaction, error) {
	i := s.indexOf(id)
	if i < 0 {
		return core.Transaction{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	tx := s.items[i]

	if v, ok := provided(in.Category); ok {
		tx.Category = v
	}
	if v, ok := provided(in.Amount); ok {
		amount, err := core.ParseAmount(v)
		if err != nil {
			return core.Transaction{}, err
		}
		tx.Amount = amount
	}
	if v, ok := provided(in.Date); ok {
		date, err := core.ParseDate(v)
		if err != nil {
			return core.Transaction{}, err
		}
		tx.Date = date
	}
	if v, ok := provided(in.Note); ok {
		tx.Note = v
	}

	s.items[i] = tx
	return tx, nil
}

// Search matches query as a case-insensitive substring of category or note.
func (s *Store) Search(query string) ([]core.Transaction, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, core.ErrEmptyQuery
	}
	out := []core.Transaction{}
	for _, tx := range s.items {
		if strings.Contains(strings.ToLower(tx.Category), q) || strings.Contains(strings.ToLower(tx.Note), q) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Filter validates c and returns the matching transactions in store order.
func (s *Store) Filter(c Criterion) ([]core.Transaction, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: missing filter", core.ErrValidation)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := []core.Transaction{}
	for _, tx := range s.items {
		if c.Match(tx) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Summarize totals income and expense overall and per stored category.
func (s *Store) Summarize() (core.Summary, error) {
	if len(s.items) == 0 {
		return core.Summary{}, core.ErrEmptyStore
	}
	sum := core.Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, tx := range s.items {
		switch {
		case tx.IsIncome():
			sum.TotalIncome = sum.TotalIncome.Add(tx.Amount)
			sum.IncomeCount++
			sum.IncomeByCategory = addToCategory(sum.IncomeByCategory, tx.Category, tx.Amount)
		case tx.IsExpense():
			sum.TotalExpense = sum.TotalExpense.Add(tx.Amount)
			sum.ExpenseCount++
			sum.ExpenseByCategory = addToCategory(sum.ExpenseByCategory, tx.Category, tx.Amount)
		}
	}
	sum.Balance = sum.TotalIncome.Sub(sum.TotalExpense)
	return sum, nil
}

// Clear drops every transaction and returns how many were removed.
func (s *Store) Clear() int {
	n := len(s.items)
	s.items = nil
	return n
}

func (s *Store) indexOf(id string) int {
	id = strings.TrimSpace(id)
	for i, tx := range s.items {
		if strings.EqualFold(tx.ID, id) {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

func provided(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(*v)
	return trimmed, trimmed != ""
}

func addToCategory(totals core.CategoryTotals, name string, amount decimal.Decimal) core.CategoryTotals {
	for i := range totals {
		if totals[i].Name == name {
			totals[i].Amount = totals[i].Amount.Add(amount)
			return totals
		}
	}
	return append(totals, core.CategoryAmount{Name: name, Amount: amount})
}
