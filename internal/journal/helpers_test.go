package journal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/mayores/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func debitRow(id, txn int, account string, class model.Classification, amount string) model.Movement {
	return model.Movement{
		ID:                id,
		Date:              date(2025, 1, 15),
		TransactionNumber: txn,
		Account:           account,
		Classification:    class,
		Debit:             dec(amount),
	}
}

func creditRow(id, txn int, account string, class model.Classification, amount string) model.Movement {
	return model.Movement{
		ID:                id,
		Date:              date(2025, 1, 15),
		TransactionNumber: txn,
		Account:           account,
		Classification:    class,
		Credit:            dec(amount),
	}
}

// balancedEntry returns a two-row transaction: debit Caja, credit Capital Social.
func balancedEntry(firstID, txn int, amount string) []model.Movement {
	return []model.Movement{
		debitRow(firstID, txn, "Caja", model.ClassAsset, amount),
		creditRow(firstID+1, txn, "Capital Social", model.ClassCapital, amount),
	}
}
