package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/mayores/internal/model"
)

// Header is the CSV header of a journal export.
const Header = "id,asiento,fecha,cuenta,clasificacion,debe,haber,concepto,orden"

const (
	numFields = 9
	colID     = 0
	colTxn    = 1
	colDate   = 2
	colAcct   = 3
	colClass  = 4
	colDebit  = 5
	colCredit = 6
	colMemo   = 7
	colOrder  = 8
)

// ReadMovements reads all rows from a journal CSV.
func ReadMovements(r io.Reader) ([]model.Movement, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var rows []model.Movement
	for i, rec := range records[1:] {
		m, err := UnmarshalMovement(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, m)
	}
	return rows, nil
}

// WriteMovements writes rows to a journal CSV (including header).
func WriteMovements(w io.Writer, rows []model.Movement) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, m := range rows {
		if err := cw.Write(MarshalMovement(m)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalMovement converts a row to CSV fields.
func MarshalMovement(m model.Movement) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(m.ID)
	row[colTxn] = strconv.Itoa(m.TransactionNumber)
	if !m.Date.IsZero() {
		row[colDate] = m.Date.Format(model.DateFormat)
	}
	row[colAcct] = m.Account
	row[colClass] = string(m.Classification)

	if !m.Debit.IsZero() {
		row[colDebit] = m.Debit.StringFixed(2)
	}
	if !m.Credit.IsZero() {
		row[colCredit] = m.Credit.StringFixed(2)
	}

	row[colMemo] = m.Memo
	row[colOrder] = m.OrderID
	return row
}

// UnmarshalMovement converts CSV fields to a row. Malformed amounts read as zero.
func UnmarshalMovement(record []string) (model.Movement, error) {
	if len(record) != numFields {
		return model.Movement{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var rowID int
	if record[colID] != "" {
		var err error
		rowID, err = strconv.Atoi(record[colID])
		if err != nil {
			return model.Movement{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
		}
	}

	txn, err := strconv.Atoi(strings.TrimSpace(record[colTxn]))
	if err != nil {
		return model.Movement{}, fmt.Errorf("parsing asiento %q: %w", record[colTxn], err)
	}

	var date time.Time
	if record[colDate] != "" {
		date, err = time.Parse(model.DateFormat, record[colDate])
		if err != nil {
			return model.Movement{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
		}
	}

	return model.Movement{
		ID:                rowID,
		Date:              date,
		TransactionNumber: txn,
		Account:           record[colAcct],
		Classification:    model.ParseClassification(record[colClass]),
		Debit:             model.ParseAmount(record[colDebit]),
		Credit:            model.ParseAmount(record[colCredit]),
		Memo:              record[colMemo],
		OrderID:           record[colOrder],
	}, nil
}
