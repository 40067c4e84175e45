package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/mayores/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func move(d, txn int, account, debit, credit string) model.Movement {
	m := model.Movement{
		Date:              day(d),
		TransactionNumber: txn,
		Account:           account,
		Debit:             decimal.Zero,
		Credit:            decimal.Zero,
	}
	if debit != "" {
		m.Debit = dec(debit)
	}
	if credit != "" {
		m.Credit = dec(credit)
	}
	return m
}

func balances(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.RunningBalance.String()
	}
	return out
}
