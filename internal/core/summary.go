package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// CategoryTotals keeps categories in order of first occurrence.
type CategoryTotals []CategoryAmount

// Get returns the total for name. Names match exactly.
func (c CategoryTotals) Get(name string) (decimal.Decimal, bool) {
	for _, ca := range c {
		if ca.Name == name {
			return ca.Amount, true
		}
	}
	return decimal.Zero, false
}

// Summary is the income/expense overview of a whole ledger.
type Summary struct {
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	Balance           decimal.Decimal // TotalIncome - TotalExpense
	IncomeCount       int
	ExpenseCount      int
	IncomeByCategory  CategoryTotals
	ExpenseByCategory CategoryTotals
}
