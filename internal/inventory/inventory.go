// Package inventory totals the finished-goods inventory and the
// work-in-process orders.
package inventory

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/mayores/internal/model"
)

// Stock is the total of the finished-goods inventory.
type Stock struct {
	Units decimal.Decimal
	Value decimal.Decimal
}

// Process is the column totals of the work-in-process rows.
type Process struct {
	Quantity  decimal.Decimal
	Materials decimal.Decimal
	Labor     decimal.Decimal
	Overhead  decimal.Decimal
}

// Total is the accumulated cost of every order.
func (p Process) Total() decimal.Decimal {
	return p.Materials.Add(p.Labor).Add(p.Overhead)
}

// SumStock totals units and value of the inventory rows.
func SumStock(rows []model.InventoryRow) Stock {
	s := Stock{Units: decimal.Zero, Value: decimal.Zero}
	for _, r := range rows {
		s.Units = s.Units.Add(r.Units)
		s.Value = s.Value.Add(r.Total())
	}
	return s
}

// SumProcess totals each cost column of the work-in-process rows.
func SumProcess(rows []model.ProcessRow) Process {
	p := Process{Quantity: decimal.Zero, Materials: decimal.Zero, Labor: decimal.Zero, Overhead: decimal.Zero}
	for _, r := range rows {
		p.Quantity = p.Quantity.Add(r.Quantity)
		p.Materials = p.Materials.Add(r.Materials)
		p.Labor = p.Labor.Add(r.Labor)
		p.Overhead = p.Overhead.Add(r.Overhead)
	}
	return p
}

// MarshalTotals writes both sets of totals in the stored report format.
func MarshalTotals(stock Stock, process Process) ([]byte, error) {
	type stockJSON struct {
		Units model.Amount `json:"totalUnidades"`
		Value model.Amount `json:"totalValor"`
	}
	type processJSON struct {
		Quantity  model.Amount `json:"cantidad"`
		Materials model.Amount `json:"materiales"`
		Labor     model.Amount `json:"manoObra"`
		Overhead  model.Amount `json:"gastosF"`
		Total     model.Amount `json:"total"`
	}
	return json.Marshal(struct {
		Inventory stockJSON   `json:"inventory"`
		Process   processJSON `json:"process"`
	}{
		Inventory: stockJSON{
			Units: model.NewAmount(stock.Units),
			Value: model.NewAmount(stock.Value),
		},
		Process: processJSON{
			Quantity:  model.NewAmount(process.Quantity),
			Materials: model.NewAmount(process.Materials),
			Labor:     model.NewAmount(process.Labor),
			Overhead:  model.NewAmount(process.Overhead),
			Total:     model.NewAmount(process.Total()),
		},
	})
}
