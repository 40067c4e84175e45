package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/mayores/internal/model"
)

// Kind tells account schedules from production-order schedules.
type Kind string

const (
	KindAccount Kind = "account"
	KindOrder   Kind = "order"
)

// Label names the side a closing balance falls on.
type Label string

const (
	LabelNone     Label = ""
	LabelDebtor   Label = "Deudor"
	LabelCreditor Label = "Acreedor"
)

// Line is one movement with the balance after applying it.
type Line struct {
	Movement       model.Movement
	RunningBalance decimal.Decimal
}

// Schedule is the T-account view of one account or production order.
type Schedule struct {
	Subject        string
	Kind           Kind
	Classification model.Classification
	Product        string
	OpeningAmount  decimal.Decimal
	OpeningSide    model.Side
	Lines          []Line
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	ClosingBalance decimal.Decimal
	ClosingLabel   Label

	// FallbackConvention is set when the account has no known
	// classification and the debit-normal convention was applied.
	FallbackConvention bool
}

// ClosingMagnitude is the displayed closing figure.
func (s Schedule) ClosingMagnitude() decimal.Decimal {
	return s.ClosingBalance.Abs()
}

// AccumulatedCost is the closing figure of an order schedule.
func (s Schedule) AccumulatedCost() decimal.Decimal {
	return s.ClosingBalance.Abs()
}

// ShowOpening reports whether the opening line carries a figure worth
// displaying. A zero opening still counts in the totals.
func (s Schedule) ShowOpening() bool {
	return !s.OpeningAmount.IsZero()
}

// BuildAccountSchedule runs the movements, already in chronological order,
// against the opening balance using the classification's sign convention.
func BuildAccountSchedule(name string, opening AccountOpening, movements []model.Movement) Schedule {
	s := Schedule{
		Subject:        name,
		Kind:           KindAccount,
		Classification: opening.Classification,
		OpeningAmount:  opening.Amount,
		OpeningSide:    opening.Side,
		Lines:          make([]Line, 0, len(movements)),
	}
	creditNormal := opening.Classification.CreditNormal()
	s.FallbackConvention = !opening.Classification.Valid()

	running := opening.Amount
	sumDebit, sumCredit := decimal.Zero, decimal.Zero
	for _, m := range movements {
		if creditNormal {
			running = running.Add(m.Credit).Sub(m.Debit)
		} else {
			running = running.Add(m.Debit).Sub(m.Credit)
		}
		sumDebit = sumDebit.Add(m.Debit)
		sumCredit = sumCredit.Add(m.Credit)
		s.Lines = append(s.Lines, Line{Movement: m, RunningBalance: running})
	}

	s.TotalDebit = sumDebit
	s.TotalCredit = sumCredit
	switch opening.Side {
	case model.SideDebit:
		s.TotalDebit = opening.Amount.Add(sumDebit)
	case model.SideCredit:
		s.TotalCredit = opening.Amount.Add(sumCredit)
	}

	s.ClosingBalance = running
	s.ClosingLabel = closingLabel(running, creditNormal)
	return s
}

// BuildOrderSchedule accumulates cost for a production order. Orders are
// always debit-normal and carry no debtor/creditor label.
func BuildOrderSchedule(label string, opening OrderOpening, movements []model.Movement) Schedule {
	s := Schedule{
		Subject:       label,
		Kind:          KindOrder,
		Product:       opening.Product,
		OpeningAmount: opening.Amount,
		OpeningSide:   model.SideDebit,
		Lines:         make([]Line, 0, len(movements)),
	}

	running := opening.Amount
	sumDebit, sumCredit := decimal.Zero, decimal.Zero
	for _, m := range movements {
		running = running.Add(m.Debit).Sub(m.Credit)
		sumDebit = sumDebit.Add(m.Debit)
		sumCredit = sumCredit.Add(m.Credit)
		s.Lines = append(s.Lines, Line{Movement: m, RunningBalance: running})
	}

	s.TotalDebit = opening.Amount.Add(sumDebit)
	s.TotalCredit = sumCredit
	s.ClosingBalance = running
	return s
}

func closingLabel(balance decimal.Decimal, creditNormal bool) Label {
	positive := !balance.IsNegative()
	if creditNormal {
		if positive {
			return LabelCreditor
		}
		return LabelDebtor
	}
	if positive {
		return LabelDebtor
	}
	return LabelCreditor
}
