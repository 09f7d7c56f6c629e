package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"ledger/internal/core"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// cell keeps user text on one table row.
func cell(s string) string {
	return strings.NewReplacer("\t", " ", "\r", " ", "\n", " ").Replace(s)
}

func renderTransactions(w io.Writer, txs []core.Transaction) error {
	if len(txs) == 0 {
		_, err := fmt.Fprintln(w, "No transactions found.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tType\tCategory\tAmount\tDate\tNote")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID,
			tx.Type,
			cell(core.DisplayCategory(tx.Category)),
			core.FormatAmount(tx.Amount),
			tx.Date,
			cell(tx.Note))
	}
	return tw.Flush()
}

func renderSummary(w io.Writer, s core.Summary) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Total income:\t%s\t(%d)\n", core.FormatAmount(s.TotalIncome), s.IncomeCount)
	fmt.Fprintf(tw, "Total expense:\t%s\t(%d)\n", core.FormatAmount(s.TotalExpense), s.ExpenseCount)
	fmt.Fprintf(tw, "Balance:\t%s\t\n", core.FormatAmount(s.Balance))
	if err := tw.Flush(); err != nil {
		return err
	}

	if err := renderCategories(w, "Income by category:", s.IncomeByCategory); err != nil {
		return err
	}
	return renderCategories(w, "Expense by category:", s.ExpenseByCategory)
}

func renderCategories(w io.Writer, title string, totals core.CategoryTotals) error {
	if len(totals) == 0 {
		return nil
	}
	fmt.Fprintln(w, title)
	tw := newTable(w)
	for _, ca := range totals {
		fmt.Fprintf(tw, "  %s\t%s\n", cell(ca.Name), core.FormatAmount(ca.Amount))
	}
	return tw.Flush()
}
