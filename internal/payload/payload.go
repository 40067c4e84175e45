// Package payload encodes and decodes the row data stored inside reports.
// Field names follow the stored report format; numbers may arrive as JSON
// numbers or strings and anything malformed reads as zero.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/mayores/internal/model"
)

// ErrUnexpectedShape indicates report data that is not in the expected layout.
var ErrUnexpectedShape = errors.New("payload: unexpected report data shape")

type balanceRow struct {
	ID             int          `json:"id,omitempty"`
	Account        string       `json:"cuenta"`
	Classification string       `json:"clasificacion"`
	Amount         model.Amount `json:"monto"`
	IsNewAccount   bool         `json:"isNewAccount,omitempty"`
}

type journalRow struct {
	ID             int          `json:"id"`
	Date           string       `json:"fecha"`
	Transaction    model.Amount `json:"noAsiento"`
	Account        string       `json:"cuenta"`
	Classification string       `json:"clasificacion"`
	Debit          model.Amount `json:"debe"`
	Credit         model.Amount `json:"haber"`
	Memo           string       `json:"concepto"`
	IsNewAccount   bool         `json:"isNewAccount,omitempty"`
	OrderID        string       `json:"ordenId,omitempty"`
}

type processRow struct {
	ID        int          `json:"id,omitempty"`
	Detail    string       `json:"detalle"`
	Product   string       `json:"producto"`
	Quantity  model.Amount `json:"cantidad"`
	Materials model.Amount `json:"materiales"`
	Labor     model.Amount `json:"manoObra"`
	Overhead  model.Amount `json:"gastosF"`
	OrderID   string       `json:"ordenId,omitempty"`
}

type inventoryRow struct {
	ID       int          `json:"id,omitempty"`
	Product  string       `json:"producto"`
	Units    model.Amount `json:"unidades"`
	UnitCost model.Amount `json:"costoUnitario"`
}

type section struct {
	Rows json.RawMessage `json:"rows"`
}

type inventoryData struct {
	Inventory json.RawMessage `json:"inventory"`
	Process   json.RawMessage `json:"process"`
}

// DecodeBalance reads Balance de Saldos rows.
func DecodeBalance(data []byte) ([]model.BalanceRow, error) {
	var raw []balanceRow
	if err := decodeArray(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding balance rows: %w", err)
	}
	rows := make([]model.BalanceRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, model.BalanceRow{
			Account:        r.Account,
			Classification: model.ParseClassification(r.Classification),
			Amount:         r.Amount.Decimal,
		})
	}
	return rows, nil
}

// EncodeBalance writes Balance de Saldos rows.
func EncodeBalance(rows []model.BalanceRow) ([]byte, error) {
	raw := make([]balanceRow, len(rows))
	for i, r := range rows {
		raw[i] = balanceRow{
			ID:             i + 1,
			Account:        r.Account,
			Classification: string(r.Classification),
			Amount:         model.NewAmount(r.Amount),
		}
	}
	return json.Marshal(raw)
}

// DecodeJournal reads journal rows.
func DecodeJournal(data []byte) ([]model.Movement, error) {
	var raw []journalRow
	if err := decodeArray(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding journal rows: %w", err)
	}
	rows := make([]model.Movement, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, model.Movement{
			ID:                r.ID,
			Date:              parseDate(r.Date),
			TransactionNumber: int(r.Transaction.IntPart()),
			Account:           r.Account,
			Classification:    model.ParseClassification(r.Classification),
			Debit:             r.Debit.Decimal,
			Credit:            r.Credit.Decimal,
			Memo:              r.Memo,
			IsNewAccount:      r.IsNewAccount,
			OrderID:           r.OrderID,
		})
	}
	return rows, nil
}

// EncodeJournal writes journal rows.
func EncodeJournal(rows []model.Movement) ([]byte, error) {
	raw := make([]journalRow, len(rows))
	for i, r := range rows {
		raw[i] = journalRow{
			ID:             r.ID,
			Transaction:    model.NewAmount(decimal.NewFromInt(int64(r.TransactionNumber))),
			Account:        r.Account,
			Classification: string(r.Classification),
			Debit:          model.NewAmount(r.Debit),
			Credit:         model.NewAmount(r.Credit),
			Memo:           r.Memo,
			IsNewAccount:   r.IsNewAccount,
			OrderID:        r.OrderID,
		}
		if !r.Date.IsZero() {
			raw[i].Date = r.Date.Format(model.DateFormat)
		}
	}
	return json.Marshal(raw)
}

// DecodeInventory reads the inventory and work-in-process sections. The
// process section may be {"rows": [...]} or a bare array. Data that is not
// an object yields no rows.
func DecodeInventory(data []byte) ([]model.InventoryRow, []model.ProcessRow, error) {
	var top inventoryData
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, nil, fmt.Errorf("decoding inventory data: %w", ErrUnexpectedShape)
	}

	var inv []inventoryRow
	if err := decodeSection(top.Inventory, &inv); err != nil {
		return nil, nil, fmt.Errorf("decoding inventory rows: %w", err)
	}
	var proc []processRow
	if err := decodeSection(top.Process, &proc); err != nil {
		return nil, nil, fmt.Errorf("decoding process rows: %w", err)
	}

	invRows := make([]model.InventoryRow, 0, len(inv))
	for _, r := range inv {
		invRows = append(invRows, model.InventoryRow{
			Product:  r.Product,
			Units:    r.Units.Decimal,
			UnitCost: r.UnitCost.Decimal,
		})
	}
	procRows := make([]model.ProcessRow, 0, len(proc))
	for _, r := range proc {
		procRows = append(procRows, model.ProcessRow{
			Detail:    r.Detail,
			Product:   r.Product,
			Quantity:  r.Quantity.Decimal,
			Materials: r.Materials.Decimal,
			Labor:     r.Labor.Decimal,
			Overhead:  r.Overhead.Decimal,
			OrderID:   r.OrderID,
		})
	}
	return invRows, procRows, nil
}

// EncodeInventory writes both sections in the {"rows": [...]} layout.
func EncodeInventory(inv []model.InventoryRow, proc []model.ProcessRow) ([]byte, error) {
	invRaw := make([]inventoryRow, len(inv))
	for i, r := range inv {
		invRaw[i] = inventoryRow{
			ID:       i + 1,
			Product:  r.Product,
			Units:    model.NewAmount(r.Units),
			UnitCost: model.NewAmount(r.UnitCost),
		}
	}
	procRaw := make([]processRow, len(proc))
	for i, r := range proc {
		procRaw[i] = processRow{
			ID:        i + 1,
			Detail:    r.Detail,
			Product:   r.Product,
			Quantity:  model.NewAmount(r.Quantity),
			Materials: model.NewAmount(r.Materials),
			Labor:     model.NewAmount(r.Labor),
			Overhead:  model.NewAmount(r.Overhead),
			OrderID:   r.OrderID,
		}
	}

	out := struct {
		Inventory struct {
			Rows []inventoryRow `json:"rows"`
		} `json:"inventory"`
		Process struct {
			Rows []processRow `json:"rows"`
		} `json:"process"`
	}{}
	out.Inventory.Rows = invRaw
	out.Process.Rows = procRaw
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding inventory data: %w", err)
	}
	return data, nil
}

func decodeArray(data []byte, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] != '[' {
		return ErrUnexpectedShape
	}
	return json.Unmarshal(data, v)
}

func decodeSection(data json.RawMessage, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '[' {
		return json.Unmarshal(data, v)
	}
	var s section
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrUnexpectedShape
	}
	return decodeArray(s.Rows, v)
}

// parseDate accepts a plain date or an ISO timestamp; anything else is the zero time.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if len(s) > len(model.DateFormat) {
		s = s[:len(model.DateFormat)]
	}
	d, err := time.Parse(model.DateFormat, s)
	if err != nil {
		return time.Time{}
	}
	return d
}
