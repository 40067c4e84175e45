package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ProgramID identifies the sub-program that produced a report.
type ProgramID int

const (
	ProgramBalance   ProgramID = 1
	ProgramInventory ProgramID = 2
	ProgramJournal   ProgramID = 3
	ProgramLedger    ProgramID = 4
)

// String returns the report type name stored with the report.
func (p ProgramID) String() string {
	switch p {
	case ProgramBalance:
		return "Balance de Saldos"
	case ProgramInventory:
		return "Inventario y Productos en Proceso"
	case ProgramJournal:
		return "Registros Contables"
	case ProgramLedger:
		return "Mayores Auxiliares"
	default:
		return "Desconocido"
	}
}

// Report is a saved snapshot of one sub-program's rows.
type Report struct {
	ID         int64
	UserID     string
	Name       string
	ReportType string
	ProgramID  ProgramID
	Date       time.Time
	Data       json.RawMessage
	Totals     json.RawMessage
	Metadata   json.RawMessage
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BalanceRow is one line of the Balance de Saldos.
type BalanceRow struct {
	Account        string
	Classification Classification
	Amount         decimal.Decimal
}

// ProcessRow is one work-in-process line; Detail labels the production order.
type ProcessRow struct {
	Detail    string
	Product   string
	Quantity  decimal.Decimal
	Materials decimal.Decimal
	Labor     decimal.Decimal
	Overhead  decimal.Decimal
	OrderID   string
}

// Total is the accumulated cost of the order.
func (r ProcessRow) Total() decimal.Decimal {
	return r.Materials.Add(r.Labor).Add(r.Overhead)
}

// InventoryRow is one finished-goods inventory line.
type InventoryRow struct {
	Product  string
	Units    decimal.Decimal
	UnitCost decimal.Decimal
}

// Total is the line value.
func (r InventoryRow) Total() decimal.Decimal {
	return r.Units.Mul(r.UnitCost)
}
