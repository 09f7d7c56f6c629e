package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"ledger/internal/core"
	"ledger/internal/ledger"
	"ledger/internal/log"
	"ledger/internal/services"
)

var errInputClosed = errors.New("input closed")

const menuText = `
1) Add transaction
2) List transactions
3) Delete transaction
4) Edit transaction
5) Search
6) Filter
7) Sort
8) Summary
9) Clear all
10) Save
0) Quit
`

// Menu drives a LedgerService from line-oriented input. Invalid answers are
// asked again; closing the input behaves like Quit.
type Menu struct {
	svc    *services.LedgerService
	in     *bufio.Scanner
	out    io.Writer
	logger *log.Logger
	now    func() time.Time
}

func NewMenu(svc *services.LedgerService, in io.Reader, out io.Writer, logger *log.Logger) *Menu {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Menu{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.WithComponent(log.ComponentCLI),
		now:    time.Now,
	}
}

// Run loops until Quit or end of input, then saves. The returned error is
// the final save's.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprint(m.out, menuText)
		choice, err := m.readLine("Choose an option: ")
		if err != nil {
			return m.quit(ctx)
		}

		switch strings.ToLower(choice) {
		case "1":
			err = m.add(ctx)
		case "2":
			err = renderTransactions(m.out, m.svc.Store().All())
		case "3":
			err = m.delete(ctx)
		case "4":
			err = m.edit(ctx)
		case "5":
			err = m.search()
		case "6":
			err = m.filter()
		case "7":
			err = m.sort()
		case "8":
			err = m.summary()
		case "9":
			err = m.clear(ctx)
		case "10":
			err = m.save(ctx)
		case "0", "q", "quit":
			return m.quit(ctx)
		default:
			fmt.Fprintf(m.out, "Unknown option %q.\n", choice)
			continue
		}

		if errors.Is(err, errInputClosed) {
			return m.quit(ctx)
		}
		if err != nil {
			m.logger.DebugContext(ctx, "Menu action failed", log.FieldError, err)
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}
	}
}

func (m *Menu) add(ctx context.Context) error {
	typ, err := ask(m, "Type (income/expense): ", core.ParseType)
	if err != nil {
		return err
	}
	category, err := ask(m, "Category: ", parseCategory)
	if err != nil {
		return err
	}
	amount, err := ask(m, "Amount: ", core.ParseAmount)
	if err != nil {
		return err
	}
	date, err := ask(m, "Date (YYYY-MM-DD, blank for today): ", m.parseDateOrToday)
	if err != nil {
		return err
	}
	note, err := m.readLine("Note (optional): ")
	if err != nil {
		return err
	}

	tx, err := m.svc.Add(ctx, ledger.Entry{
		Type:     typ,
		Category: category,
		Amount:   amount,
		Date:     date,
		Note:     note,
	})
	if errors.Is(err, core.ErrDuplicate) {
		fmt.Fprintf(m.out, "That transaction already exists (%v).\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Added transaction %s.\n", tx.ID)
	return nil
}

func (m *Menu) delete(ctx context.Context) error {
	id, err := m.readLine("Transaction ID: ")
	if err != nil {
		return err
	}
	tx, err := m.svc.Delete(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		fmt.Fprintf(m.out, "No transaction with ID %q.\n", id)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Deleted transaction %s.\n", tx.ID)
	return nil
}

func (m *Menu) edit(ctx context.Context) error {
	id, err := m.readLine("Transaction ID: ")
	if err != nil {
		return err
	}
	current, err := m.svc.Store().Find(id)
	if errors.Is(err, core.ErrNotFound) {
		fmt.Fprintf(m.out, "No transaction with ID %q.\n", id)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Leave a field blank to keep its current value.")
	category, err := m.readLine(fmt.Sprintf("Category [%s]: ", current.Category))
	if err != nil {
		return err
	}
	amount, err := ask(m, fmt.Sprintf("Amount [%s]: ", core.FormatAmount(current.Amount)), optional(core.ParseAmount))
	if err != nil {
		return err
	}
	date, err := ask(m, fmt.Sprintf("Date [%s]: ", current.Date), optional(core.ParseDate))
	if err != nil {
		return err
	}
	note, err := m.readLine(fmt.Sprintf("Note [%s]: ", current.Note))
	if err != nil {
		return err
	}

	tx, err := m.svc.Edit(ctx, current.ID, ledger.EditInput{
		Category: &category,
		Amount:   &amount,
		Date:     &date,
		Note:     &note,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Updated transaction %s.\n", tx.ID)
	return nil
}

func (m *Menu) search() error {
	query, err := ask(m, "Search text: ", func(s string) (string, error) {
		if s == "" {
			return "", core.ErrEmptyQuery
		}
		return s, nil
	})
	if err != nil {
		return err
	}
	txs, err := m.svc.Store().Search(query)
	if err != nil {
		return err
	}
	return renderTransactions(m.out, txs)
}

func (m *Menu) filter() error {
	kind, err := ask(m, "Filter by (1) type (2) category (3) amount range (4) date range: ", parseFilterKind)
	if err != nil {
		return err
	}

	var c ledger.Criterion
	switch kind {
	case "1":
		c, err = ask(m, "Type (income/expense): ", func(s string) (ledger.Criterion, error) {
			return ledger.NewTypeFilter(s)
		})
	case "2":
		c, err = ask(m, "Category: ", func(s string) (ledger.Criterion, error) {
			return ledger.NewCategoryFilter(s)
		})
	case "3":
		c, err = askRange(m, "Minimum amount: ", "Maximum amount: ", func(lo, hi string) (ledger.Criterion, error) {
			return ledger.NewAmountRangeFilter(lo, hi)
		})
	case "4":
		c, err = askRange(m, "From date (YYYY-MM-DD): ", "To date (YYYY-MM-DD): ", func(from, to string) (ledger.Criterion, error) {
			return ledger.NewDateRangeFilter(from, to)
		})
	}
	if err != nil {
		return err
	}

	txs, err := m.svc.Store().Filter(c)
	if err != nil {
		return err
	}
	return renderTransactions(m.out, txs)
}

func (m *Menu) sort() error {
	key, err := ask(m, "Sort by (type/amount/date): ", ledger.ParseSortKey)
	if err != nil {
		return err
	}
	txs, err := m.svc.Store().Sort(key)
	if err != nil {
		return err
	}
	return renderTransactions(m.out, txs)
}

func (m *Menu) summary() error {
	s, err := m.svc.Store().Summarize()
	if errors.Is(err, core.ErrEmptyStore) {
		fmt.Fprintln(m.out, "No transactions to summarize.")
		return nil
	}
	if err != nil {
		return err
	}
	return renderSummary(m.out, s)
}

func (m *Menu) clear(ctx context.Context) error {
	answer, err := m.readLine("Are you sure you want to delete all transactions? (y/N): ")
	if err != nil {
		return err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		n := m.svc.Clear(ctx)
		fmt.Fprintf(m.out, "Removed %d transactions.\n", n)
	default:
		fmt.Fprintln(m.out, "Nothing was removed.")
	}
	return nil
}

func (m *Menu) save(ctx context.Context) error {
	if err := m.svc.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Saved %d transactions.\n", m.svc.Store().Len())
	return nil
}

func (m *Menu) quit(ctx context.Context) error {
	if err := m.save(ctx); err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return err
	}
	fmt.Fprintln(m.out, "Goodbye.")
	return nil
}

func (m *Menu) readLine(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// ask repeats the prompt until parse accepts the answer. Only validation
// errors are retried.
func ask[T any](m *Menu, label string, parse func(string) (T, error)) (T, error) {
	for {
		answer, err := m.readLine(label)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(answer)
		if errors.Is(err, core.ErrValidation) {
			m.rejectInput(err)
			continue
		}
		return v, err
	}
}

func askRange(m *Menu, lowLabel, highLabel string, build func(lo, hi string) (ledger.Criterion, error)) (ledger.Criterion, error) {
	for {
		lo, err := m.readLine(lowLabel)
		if err != nil {
			return nil, err
		}
		hi, err := m.readLine(highLabel)
		if err != nil {
			return nil, err
		}
		c, err := build(lo, hi)
		if errors.Is(err, core.ErrValidation) {
			m.rejectInput(err)
			continue
		}
		return c, err
	}
}

func (m *Menu) rejectInput(err error) {
	m.logger.Debug("Input rejected", log.FieldOperation, log.OpValidate, log.FieldError, err)
	fmt.Fprintf(m.out, "Invalid input: %v\n", err)
}

// optional accepts a blank answer as is and validates anything else.
func optional[T any](parse func(string) (T, error)) func(string) (string, error) {
	return func(s string) (string, error) {
		if s == "" {
			return "", nil
		}
		if _, err := parse(s); err != nil {
			return "", err
		}
		return s, nil
	}
}

func parseCategory(s string) (string, error) {
	if s == "" {
		return "", core.ErrEmptyCategory
	}
	return s, nil
}

func parseFilterKind(s string) (string, error) {
	switch s {
	case "1", "2", "3", "4":
		return s, nil
	}
	return "", fmt.Errorf("%w: choose 1, 2, 3 or 4", core.ErrValidation)
}

func (m *Menu) parseDateOrToday(s string) (core.Date, error) {
	if s == "" {
		now := m.now()
		return core.NewDate(now.Year(), int(now.Month()), now.Day()), nil
	}
	return core.ParseDate(s)
}
