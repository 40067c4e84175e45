// Package balance totals the opening balance sheet (Balance de Saldos).
package balance

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/mayores/internal/model"
)

// Totals are the debit-side and credit-side sums of a balance sheet.
type Totals struct {
	Debtor   decimal.Decimal
	Creditor decimal.Decimal
}

// Difference is the absolute gap between the two sides.
func (t Totals) Difference() decimal.Decimal {
	return t.Debtor.Sub(t.Creditor).Abs()
}

// IsBalanced reports whether the sides agree within tolerance.
func (t Totals) IsBalanced() bool {
	return t.Difference().LessThan(model.Tolerance)
}

// Sum adds asset amounts to the debtor side and liability and capital
// amounts to the creditor side. Unclassified rows are left out.
func Sum(rows []model.BalanceRow) Totals {
	t := Totals{Debtor: decimal.Zero, Creditor: decimal.Zero}
	for _, r := range rows {
		switch r.Classification.NormalSide() {
		case model.SideDebit:
			t.Debtor = t.Debtor.Add(r.Amount)
		case model.SideCredit:
			t.Creditor = t.Creditor.Add(r.Amount)
		}
	}
	return t
}

// Unclassified returns the rows that Sum leaves out.
func Unclassified(rows []model.BalanceRow) []model.BalanceRow {
	var out []model.BalanceRow
	for _, r := range rows {
		if !r.Classification.Valid() {
			out = append(out, r)
		}
	}
	return out
}

type totalsJSON struct {
	Debtor   model.Amount `json:"deudor"`
	Creditor model.Amount `json:"acreedor"`
}

// MarshalJSON writes the totals in the stored report format.
func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(totalsJSON{
		Debtor:   model.NewAmount(t.Debtor),
		Creditor: model.NewAmount(t.Creditor),
	})
}

// UnmarshalJSON reads stored totals; missing or malformed figures are zero.
func (t *Totals) UnmarshalJSON(data []byte) error {
	var raw totalsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding balance totals: %w", err)
	}
	t.Debtor = raw.Debtor.Decimal
	t.Creditor = raw.Creditor.Decimal
	return nil
}
