package ledger

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger/internal/core"
)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("tx%02d", n)
	})
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func entry(typ core.TransactionType, category, amt string, date core.Date, note string) Entry {
	return Entry{Type: typ, Category: category, Amount: amount(amt), Date: date, Note: note}
}

func mustAdd(t *testing.T, s *Store, e Entry) core.Transaction {
	t.Helper()
	tx, err := s.Add(e)
	require.NoError(t, err)
	return tx
}

func ids(txs []core.Transaction) []string {
	out := make([]string, 0, len(txs))
	for _, tx := range txs {
		out = append(out, tx.ID)
	}
	return out
}

func TestAddAssignsIDAndAppends(t *testing.T) {
	s := New(sequentialIDs())
	tx := mustAdd(t, s, entry(core.Income, " Salary ", "1000", core.NewDate(2024, 1, 31), "january"))

	assert.Equal(t, "tx01", tx.ID)
	assert.Equal(t, "Salary", tx.Category)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []core.Transaction{tx}, s.All())
}

func TestAddRejectsDuplicateIgnoringNoteAndCase(t *testing.T) {
	s := New(sequentialIDs())
	mustAdd(t, s, entry(core.Expense, "Food", "12.50", core.NewDate(2024, 1, 1), "lunch"))

	_, err := s.Add(entry(core.Expense, "food", "12.5", core.NewDate(2024, 1, 1), "dinner"))
	require.ErrorIs(t, err, core.ErrDuplicate)
	assert.Equal(t, 1, s.Len())

	// A different date is a different entry.
	mustAdd(t, s, entry(core.Expense, "food", "12.5", core.NewDate(2024, 1, 2), "dinner"))
	// So is a different type.
	mustAdd(t, s, entry(core.Income, "food", "12.5", core.NewDate(2024, 1, 1), ""))
	assert.Equal(t, 3, s.Len())
}

func TestAddValidates(t *testing.T) {
	s := New(sequentialIDs())
	cases := []Entry{
		entry("Transfer", "x", "1", core.NewDate(2024, 1, 1), ""),
		entry(core.Expense, "  ", "1", core.NewDate(2024, 1, 1), ""),
		entry(core.Expense, "x", "-3", core.NewDate(2024, 1, 1), ""),
		{Type: core.Expense, Category: "x", Amount: amount("1")},
	}
	for i, e := range cases {
		_, err := s.Add(e)
		assert.ErrorIs(t, err, core.ErrValidation, "case %d", i)
	}
	assert.Zero(t, s.Len())
}

func TestAddRetriesOnIDCollision(t *testing.T) {
	gen := []string{"aaaa", "AAAA", "bbbb"}
	s := New(WithIDGenerator(func() string {
		id := gen[0]
		gen = gen[1:]
		return id
	}))
	first := mustAdd(t, s, entry(core.Expense, "a", "1", core.NewDate(2024, 1, 1), ""))
	second := mustAdd(t, s, entry(core.Expense, "b", "1", core.NewDate(2024, 1, 1), ""))
	assert.Equal(t, "aaaa", first.ID)
	assert.Equal(t, "bbbb", second.ID)
}

func TestDefaultIDsAreShortAndUnique(t *testing.T) {
	s := New()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		tx := mustAdd(t, s, entry(core.Expense, "c", fmt.Sprint(i), core.NewDate(2024, 1, 1), ""))
		assert.Len(t, tx.ID, 8)
		assert.False(t, seen[tx.ID])
		seen[tx.ID] = true
	}
}

func TestDeleteIsCaseInsensitiveAndRemovesOnce(t *testing.T) {
	s := New(WithIDGenerator(func() string { return "" }))
	s.Replace([]core.Transaction{
		{ID: "abc123", Type: core.Expense, Category: "A", Amount: amount("1"), Date: core.NewDate(2024, 1, 1)},
		{ID: "def456", Type: core.Expense, Category: "B", Amount: amount("2"), Date: core.NewDate(2024, 1, 1)},
	})

	removed, err := s.Delete("ABC123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", removed.ID)
	assert.Equal(t, []string{"def456"}, ids(s.All()))

	_, err = s.Delete("abc123")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestDeleteRemovesFirstOfDuplicatedIDs(t *testing.T) {
	s := New()
	s.Replace([]core.Transaction{
		{ID: "dup", Category: "first"},
		{ID: "DUP", Category: "second"},
	})
	removed, err := s.Delete("dup")
	require.NoError(t, err)
	assert.Equal(t, "first", removed.Category)
	assert.Equal(t, 1, s.Len())
}

func strPtr(s string) *string { return &s }

func TestEdit(t *testing.T) {
	s := New(sequentialIDs())
	tx := mustAdd(t, s, entry(core.Expense, "Food", "10", core.NewDate(2024, 3, 1), "lunch"))

	edited, err := s.Edit("TX01", EditInput{
		Category: strPtr("Groceries"),
		Amount:   strPtr("15,75"),
		Date:     strPtr(""),
		Note:     nil,
	})
	require.NoError(t, err)
	assert.Equal(t, tx.ID, edited.ID)
	assert.Equal(t, core.Expense, edited.Type)
	assert.Equal(t, "Groceries", edited.Category)
	assert.Equal(t, "15.75", edited.Amount.StringFixed(2))
	assert.Equal(t, "2024-03-01", edited.Date.String())
	assert.Equal(t, "lunch", edited.Note)

	stored, err := s.Find(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, edited, stored)
}

func TestEditInvalidInputLeavesTransactionUnchanged(t *testing.T) {
	s := New(sequentialIDs())
	tx := mustAdd(t, s, entry(core.Expense, "Food", "10", core.NewDate(2024, 3, 1), "lunch"))

	_, err := s.Edit(tx.ID, EditInput{Category: strPtr("Other"), Amount: strPtr("ten")})
	require.ErrorIs(t, err, core.ErrValidation)

	_, err = s.Edit(tx.ID, EditInput{Note: strPtr("changed"), Date: strPtr("03/01/2024")})
	require.ErrorIs(t, err, core.ErrInvalidDate)

	stored, err := s.Find(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx, stored)
}

func TestEditDoesNotRecheckDuplicates(t *testing.T) {
	s := New(sequentialIDs())
	mustAdd(t, s, entry(core.Expense, "Food", "10", core.NewDate(2024, 3, 1), ""))
	second := mustAdd(t, s, entry(core.Expense, "Food", "11", core.NewDate(2024, 3, 1), ""))

	_, err := s.Edit(second.ID, EditInput{Amount: strPtr("10")})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestEditUnknownID(t *testing.T) {
	s := New()
	_, err := s.Edit("nope", EditInput{Note: strPtr("x")})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSearch(t *testing.T) {
	s := New(sequentialIDs())
	mustAdd(t, s, entry(core.Expense, "Food", "10", core.NewDate(2024, 1, 1), "Pizza night"))
	mustAdd(t, s, entry(core.Expense, "Transport", "3", core.NewDate(2024, 1, 2), "bus to food market"))
	mustAdd(t, s, entry(core.Income, "Salary", "900", core.NewDate(2024, 1, 3), ""))

	got, err := s.Search("FOOD")
	require.NoError(t, err)
	assert.Equal(t, []string{"tx01", "tx02"}, ids(got))

	got, err = s.Search("pizza")
	require.NoError(t, err)
	assert.Equal(t, []string{"tx01"}, ids(got))

	got, err = s.Search("rent")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = s.Search("   ")
	assert.ErrorIs(t, err, core.ErrValidation)
}

func filterFixture(t *testing.T) *Store {
	s := New(sequentialIDs())
	mustAdd(t, s, entry(core.Income, "Salary", "1000", core.NewDate(2024, 1, 1), ""))
	mustAdd(t, s, entry(core.Expense, "Bills", "200", core.NewDate(2024, 1, 10), ""))
	mustAdd(t, s, entry(core.Expense, "bills", "50", core.NewDate(2024, 2, 1), ""))
	mustAdd(t, s, entry(core.Expense, "Food", "75.25", core.NewDate(2024, 2, 15), ""))
	return s
}

func TestFilterCriteria(t *testing.T) {
	s := filterFixture(t)

	byType, err := NewTypeFilter("expense")
	require.NoError(t, err)
	byCategory, err := NewCategoryFilter("BILLS")
	require.NoError(t, err)
	byAmount, err := NewAmountRangeFilter("50", "200")
	require.NoError(t, err)
	byDate, err := NewDateRangeFilter("2024-01-10", "2024-02-01")
	require.NoError(t, err)

	cases := []struct {
		name string
		c    Criterion
		want []string
	}{
		{"type", byType, []string{"tx02", "tx03", "tx04"}},
		{"category", byCategory, []string{"tx02", "tx03"}},
		{"amount inclusive", byAmount, []string{"tx02", "tx03", "tx04"}},
		{"date inclusive", byDate, []string{"tx02", "tx03"}},
		{"income", ByType{Type: core.Income}, []string{"tx01"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Filter(tc.c)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestFilterAmountRangeMinAboveMaxIsEmpty(t *testing.T) {
	s := filterFixture(t)
	c, err := NewAmountRangeFilter("100", "50")
	require.NoError(t, err)

	got, err := s.Filter(c)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterMalformedInput(t *testing.T) {
	_, err := NewTypeFilter("gift")
	assert.ErrorIs(t, err, core.ErrValidation)
	_, err = NewCategoryFilter(" ")
	assert.ErrorIs(t, err, core.ErrValidation)
	_, err = NewAmountRangeFilter("ten", "20")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	_, err = NewAmountRangeFilter("1", "")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	_, err = NewAmountRangeFilter("1e400", "5")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	_, err = NewAmountRangeFilter("0", "1e9999999")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	_, err = NewDateRangeFilter("2024-01-01", "tomorrow")
	assert.ErrorIs(t, err, core.ErrInvalidDate)

	s := filterFixture(t)
	for _, c := range []Criterion{ByCategory{}, ByType{Type: "x"}, ByDateRange{}, nil} {
		_, err := s.Filter(c)
		assert.ErrorIs(t, err, core.ErrValidation)
	}
}

func TestSortByTypeIsStable(t *testing.T) {
	s := New(sequentialIDs())
	a := mustAdd(t, s, entry(core.Income, "A", "1", core.NewDate(2024, 1, 1), ""))
	b := mustAdd(t, s, entry(core.Expense, "B", "1", core.NewDate(2024, 1, 1), ""))
	c := mustAdd(t, s, entry(core.Income, "C", "1", core.NewDate(2024, 1, 1), ""))

	got, err := s.Sort(SortByType)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID, c.ID}, ids(got))
	// Sorting is a view; the store keeps insertion order.
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids(s.All()))
}

func TestSortByAmountAndDate(t *testing.T) {
	s := New(sequentialIDs())
	mustAdd(t, s, entry(core.Expense, "A", "20", core.NewDate(2024, 3, 1), ""))
	mustAdd(t, s, entry(core.Expense, "B", "5.5", core.NewDate(2024, 1, 1), ""))
	mustAdd(t, s, entry(core.Expense, "C", "20.00", core.NewDate(2024, 2, 1), ""))
	mustAdd(t, s, entry(core.Income, "D", "100", core.NewDate(2024, 1, 1), ""))

	byAmount, err := s.Sort(SortByAmount)
	require.NoError(t, err)
	assert.Equal(t, []string{"tx02", "tx01", "tx03", "tx04"}, ids(byAmount))

	key, err := ParseSortKey(" Date ")
	require.NoError(t, err)
	byDate, err := s.Sort(key)
	require.NoError(t, err)
	assert.Equal(t, []string{"tx02", "tx04", "tx03", "tx01"}, ids(byDate))

	_, err = ParseSortKey("note")
	assert.ErrorIs(t, err, core.ErrValidation)
	_, err = s.Sort("note")
	assert.ErrorIs(t, err, core.ErrInvalidSortKey)
}

func TestSummarize(t *testing.T) {
	s := New(sequentialIDs())
	mustAdd(t, s, entry(core.Income, "Salary", "1000", core.NewDate(2024, 1, 1), ""))
	mustAdd(t, s, entry(core.Expense, "Bills", "200", core.NewDate(2024, 1, 2), "power"))
	mustAdd(t, s, entry(core.Expense, "Bills", "300", core.NewDate(2024, 1, 3), "water"))

	sum, err := s.Summarize()
	require.NoError(t, err)
	assert.Equal(t, "1000.00", sum.TotalIncome.StringFixed(2))
	assert.Equal(t, "500.00", sum.TotalExpense.StringFixed(2))
	assert.Equal(t, "500.00", sum.Balance.StringFixed(2))
	assert.Equal(t, 1, sum.IncomeCount)
	assert.Equal(t, 2, sum.ExpenseCount)
	require.Len(t, sum.ExpenseByCategory, 1)
	bills, ok := sum.ExpenseByCategory.Get("Bills")
	require.True(t, ok)
	assert.Equal(t, "500.00", bills.StringFixed(2))
	salary, ok := sum.IncomeByCategory.Get("Salary")
	require.True(t, ok)
	assert.Equal(t, "1000.00", salary.StringFixed(2))
}

func TestSummarizeGroupsCaseSensitivelyInFirstSeenOrder(t *testing.T) {
	s := New(sequentialIDs())
	mustAdd(t, s, entry(core.Expense, "food", "1", core.NewDate(2024, 1, 1), ""))
	mustAdd(t, s, entry(core.Expense, "Rent", "2", core.NewDate(2024, 1, 1), ""))
	mustAdd(t, s, entry(core.Expense, "Food", "3", core.NewDate(2024, 1, 1), ""))
	mustAdd(t, s, entry(core.Expense, "food", "4", core.NewDate(2024, 1, 2), ""))

	sum, err := s.Summarize()
	require.NoError(t, err)
	names := []string{}
	for _, ca := range sum.ExpenseByCategory {
		names = append(names, ca.Name)
	}
	assert.Equal(t, []string{"food", "Rent", "Food"}, names)
	food, _ := sum.ExpenseByCategory.Get("food")
	assert.Equal(t, "5.00", food.StringFixed(2))
	assert.Empty(t, sum.IncomeByCategory)
	assert.Equal(t, "-10.00", sum.Balance.StringFixed(2))
}

func TestSummarizeEmptyStore(t *testing.T) {
	_, err := New().Summarize()
	assert.ErrorIs(t, err, core.ErrEmptyStore)
}

func TestClear(t *testing.T) {
	s := filterFixture(t)
	assert.Equal(t, 4, s.Clear())
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Clear())
	assert.Empty(t, s.All())
}

func TestReplaceCopiesInput(t *testing.T) {
	in := []core.Transaction{{ID: "a"}, {ID: "b"}}
	s := New()
	s.Replace(in)
	in[0].ID = "changed"
	assert.Equal(t, []string{"a", "b"}, ids(s.All()))
}
