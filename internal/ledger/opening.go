package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/mayores/internal/model"
)

// AccountOpening is an account's figure in the opening balance sheet.
type AccountOpening struct {
	Amount         decimal.Decimal
	Side           model.Side
	Classification model.Classification
}

// OrderOpening is a production order's cost in the work-in-process snapshot.
// Order openings always sit on the debit side.
type OrderOpening struct {
	Amount  decimal.Decimal
	Exists  bool
	Product string
	OrderID string
}

// OpeningForAccount finds name in the balance sheet. An account that is not
// there opens at zero with no side and no classification.
func OpeningForAccount(name string, rows []model.BalanceRow) AccountOpening {
	for _, r := range rows {
		if model.SameName(r.Account, name) {
			return AccountOpening{
				Amount:         r.Amount,
				Side:           r.Classification.NormalSide(),
				Classification: r.Classification,
			}
		}
	}
	return AccountOpening{Amount: decimal.Zero}
}

// OpeningForOrder finds the order whose detail label matches label,
// ignoring case. A label equal to a row's order id also matches.
func OpeningForOrder(label string, rows []model.ProcessRow) OrderOpening {
	for _, r := range rows {
		if model.SameName(r.Detail, label) || (r.OrderID != "" && r.OrderID == label) {
			return OrderOpening{
				Amount:  r.Total(),
				Exists:  true,
				Product: r.Product,
				OrderID: r.OrderID,
			}
		}
	}
	return OrderOpening{Amount: decimal.Zero}
}
