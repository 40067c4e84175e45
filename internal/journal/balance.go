package journal

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/mayores/internal/model"
)

// MinRows is the fewest rows a transaction may be closed with.
const MinRows = 2

// Balance is the debit/credit status of one transaction.
type Balance struct {
	IsBalanced  bool
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal
}

// CheckBalance totals rows already filtered to a single transaction.
// Rows without a classification count as zero.
func CheckBalance(rows []model.Movement) Balance {
	debit, credit := decimal.Zero, decimal.Zero
	for _, r := range rows {
		debit = debit.Add(r.PostedDebit())
		credit = credit.Add(r.PostedCredit())
	}
	diff := debit.Sub(credit).Abs()
	return Balance{
		IsBalanced:  diff.LessThan(model.Tolerance),
		TotalDebit:  debit,
		TotalCredit: credit,
		Difference:  diff,
	}
}

// CanStartNew reports whether a transaction with these rows may be closed.
func CanStartNew(rows []model.Movement) bool {
	return len(rows) >= MinRows && CheckBalance(rows).IsBalanced
}

// Totals sums every row of the journal.
func Totals(rows []model.Movement) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, r := range rows {
		debit = debit.Add(r.Debit)
		credit = credit.Add(r.Credit)
	}
	return debit, credit
}

// TotalsByDate sums the rows posted on the given day.
func TotalsByDate(rows []model.Movement, day string) (debit, credit decimal.Decimal) {
	var sameDay []model.Movement
	for _, r := range rows {
		if r.Date.Format(model.DateFormat) == day {
			sameDay = append(sameDay, r)
		}
	}
	return Totals(sameDay)
}
