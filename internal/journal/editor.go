package journal

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/mayores/internal/id"
	"github.com/cleared-dev/mayores/internal/model"
)

var (
	// ErrUnbalanced indicates debits and credits of a transaction differ.
	ErrUnbalanced = errors.New("journal: transaction does not balance")
	// ErrTooFewRows indicates a transaction with fewer than two rows.
	ErrTooFewRows = errors.New("journal: transaction requires at least two rows")
	// ErrRowNotFound indicates an unknown row id.
	ErrRowNotFound = errors.New("journal: row not found")
	// ErrUnknownTransaction indicates a transaction number with no rows.
	ErrUnknownTransaction = errors.New("journal: transaction not found")
)

// Field names an editable column of a journal row.
type Field string

const (
	FieldDate           Field = "fecha"
	FieldAccount        Field = "cuenta"
	FieldClassification Field = "clasificacion"
	FieldDebit          Field = "debe"
	FieldCredit         Field = "haber"
	FieldMemo           Field = "concepto"
	FieldOrderID        Field = "orden"
)

// Classifier resolves and registers account classifications.
type Classifier interface {
	Classify(name string) (model.Classification, bool)
	Commit(ctx context.Context, name string, class model.Classification) (bool, error)
}

// Editor holds the journal rows of one editing session and the transaction
// currently open for entry.
type Editor struct {
	catalog Classifier
	rows    []model.Movement
	current int
	today   time.Time
}

// NewEditor starts a journal with a single empty row in transaction 1.
func NewEditor(catalog Classifier, today time.Time) *Editor {
	e := &Editor{catalog: catalog, current: 1, today: today}
	e.rows = append(e.rows, e.blankRow(1))
	return e
}

// Rows returns a copy of every row.
func (e *Editor) Rows() []model.Movement {
	return slices.Clone(e.rows)
}

// Current returns the number of the transaction open for entry.
func (e *Editor) Current() int {
	return e.current
}

// CurrentRows returns the rows of the open transaction.
func (e *Editor) CurrentRows() []model.Movement {
	return RowsOf(e.current, e.rows)
}

// CurrentBalance returns the balance status of the open transaction.
func (e *Editor) CurrentBalance() Balance {
	return CheckBalance(e.CurrentRows())
}

// Transactions lists every transaction number in use.
func (e *Editor) Transactions() []int {
	return TransactionNumbers(e.rows)
}

// AddRow appends an empty row to the open transaction.
func (e *Editor) AddRow() model.Movement {
	row := e.blankRow(e.current)
	e.rows = append(e.rows, row)
	return row
}

// RemoveRow deletes a row. The last remaining row is never removed.
func (e *Editor) RemoveRow(rowID int) bool {
	if len(e.rows) <= 1 {
		return false
	}
	i := e.indexOf(rowID)
	if i < 0 {
		return false
	}
	e.rows = slices.Delete(e.rows, i, i+1)
	return true
}

// UpdateRow sets one field of a row. Amount fields parse-or-zero (negative
// input reads as zero), and
// setting a positive amount on one side clears the other. Amounts on a
// row without a classification are ignored.
func (e *Editor) UpdateRow(ctx context.Context, rowID int, field Field, value string) error {
	i := e.indexOf(rowID)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrRowNotFound, rowID)
	}
	row := e.rows[i]

	switch field {
	case FieldAccount:
		class, isNew := e.catalog.Classify(value)
		row.Account = value
		row.IsNewAccount = isNew
		if !isNew {
			row.Classification = class
		}
		row.Debit, row.Credit = decimal.Zero, decimal.Zero

	case FieldClassification:
		row.Classification = model.ParseClassification(value)
		if row.IsNewAccount && row.Account != "" && row.Classification.Valid() {
			if _, err := e.catalog.Commit(ctx, row.Account, row.Classification); err != nil {
				return fmt.Errorf("registering account %q: %w", row.Account, err)
			}
			row.IsNewAccount = false
		}
		row.Debit, row.Credit = decimal.Zero, decimal.Zero

	case FieldDebit:
		if !row.Ready() {
			return nil
		}
		row.Debit = nonNegative(model.ParseAmount(value))
		if row.Debit.IsPositive() {
			row.Credit = decimal.Zero
		}

	case FieldCredit:
		if !row.Ready() {
			return nil
		}
		row.Credit = nonNegative(model.ParseAmount(value))
		if row.Credit.IsPositive() {
			row.Debit = decimal.Zero
		}

	case FieldDate:
		d, err := time.Parse(model.DateFormat, value)
		if err != nil {
			return fmt.Errorf("parsing date %q: %w", value, err)
		}
		row.Date = d

	case FieldMemo:
		row.Memo = value

	case FieldOrderID:
		row.OrderID = value

	default:
		return fmt.Errorf("journal: unknown field %q", field)
	}

	e.rows[i] = row
	return nil
}

// StartNewTransaction closes the open transaction and opens the next unused
// number with a fresh row. The open transaction must balance and have at least
// two rows.
func (e *Editor) StartNewTransaction() error {
	rows := e.CurrentRows()
	bal := CheckBalance(rows)
	if !bal.IsBalanced {
		return fmt.Errorf("%w: asiento %d debe=%s haber=%s", ErrUnbalanced,
			e.current, bal.TotalDebit.StringFixed(2), bal.TotalCredit.StringFixed(2))
	}
	if len(rows) < MinRows {
		return fmt.Errorf("%w: asiento %d has %d", ErrTooFewRows, e.current, len(rows))
	}

	e.current = id.Next(e.Transactions())
	e.rows = append(e.rows, e.blankRow(e.current))
	return nil
}

// ChangeTransaction reopens an existing transaction for entry.
func (e *Editor) ChangeTransaction(n int) error {
	if !slices.Contains(e.Transactions(), n) {
		return fmt.Errorf("%w: %d", ErrUnknownTransaction, n)
	}
	e.current = n
	return nil
}

func (e *Editor) blankRow(txn int) model.Movement {
	ids := make([]int, len(e.rows))
	for i, r := range e.rows {
		ids[i] = r.ID
	}
	return model.Movement{
		ID:                id.Next(ids),
		Date:              e.today,
		TransactionNumber: txn,
		Debit:             decimal.Zero,
		Credit:            decimal.Zero,
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func (e *Editor) indexOf(rowID int) int {
	return slices.IndexFunc(e.rows, func(r model.Movement) bool { return r.ID == rowID })
}

// Replay enters rows through the editor in order, the way a user would type
// them. A row whose transaction number moves past the open one closes it
// first, so an unbalanced or single-row transaction stops the replay.
func Replay(ctx context.Context, ed *Editor, rows []model.Movement) error {
	blank := true
	for i, r := range rows {
		if r.TransactionNumber != ed.Current() {
			if r.TransactionNumber != ed.Current()+1 {
				return fmt.Errorf("row %d: asiento %d follows %d", i+1, r.TransactionNumber, ed.Current())
			}
			if err := ed.StartNewTransaction(); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			blank = true
		}

		var target model.Movement
		if blank {
			cur := ed.CurrentRows()
			target = cur[len(cur)-1]
			blank = false
		} else {
			target = ed.AddRow()
		}

		if err := replayRow(ctx, ed, target.ID, r); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return nil
}

func replayRow(ctx context.Context, ed *Editor, rowID int, r model.Movement) error {
	updates := []struct {
		field Field
		value string
		skip  bool
	}{
		{FieldDate, r.Date.Format(model.DateFormat), r.Date.IsZero()},
		{FieldAccount, r.Account, false},
		{FieldClassification, string(r.Classification), r.Classification == model.ClassUnknown},
		{FieldMemo, r.Memo, r.Memo == ""},
		{FieldOrderID, r.OrderID, r.OrderID == ""},
		{FieldDebit, r.Debit.String(), !r.Debit.IsPositive()},
		{FieldCredit, r.Credit.String(), !r.Credit.IsPositive()},
	}
	for _, u := range updates {
		if u.skip {
			continue
		}
		if u.field == FieldClassification {
			if _, isNew := ed.catalog.Classify(r.Account); !isNew {
				continue
			}
		}
		if err := ed.UpdateRow(ctx, rowID, u.field, u.value); err != nil {
			return err
		}
	}
	return nil
}
