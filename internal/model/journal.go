package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the layout of every date stored in a report.
const DateFormat = "2006-01-02"

// Movement is a single row of the journal (one side of an asiento).
type Movement struct {
	ID                int
	Date              time.Time
	TransactionNumber int
	Account           string
	Classification    Classification
	Debit             decimal.Decimal // zero if credit side
	Credit            decimal.Decimal // zero if debit side
	Memo              string
	IsNewAccount      bool
	OrderID           string // optional stable production order id
}

// Ready reports whether the row has a classification and may carry amounts.
func (m Movement) Ready() bool {
	return m.Classification != ClassUnknown
}

// PostedDebit returns the debit, or zero while the row is not ready.
func (m Movement) PostedDebit() decimal.Decimal {
	if !m.Ready() {
		return decimal.Zero
	}
	return m.Debit
}

// PostedCredit returns the credit, or zero while the row is not ready.
func (m Movement) PostedCredit() decimal.Decimal {
	if !m.Ready() {
		return decimal.Zero
	}
	return m.Credit
}

// Before orders movements by date, then transaction number.
func (m Movement) Before(o Movement) bool {
	if !m.Date.Equal(o.Date) {
		return m.Date.Before(o.Date)
	}
	return m.TransactionNumber < o.TransactionNumber
}
