package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/mayores/internal/model"
)

const (
	numFields = 3
	colName   = 0
	colClass  = 1
	colDesc   = 2
)

// ReadEntries reads a catalog CSV (header row first).
func ReadEntries(r io.Reader) ([]model.CatalogEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading catalog CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.CatalogEntry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteEntries writes a catalog CSV.
func WriteEntries(w io.Writer, entries []model.CatalogEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"cuenta", "clasificacion", "descripcion"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalEntry converts an entry to a CSV row.
func MarshalEntry(e model.CatalogEntry) []string {
	row := make([]string, numFields)
	row[colName] = e.Name
	row[colClass] = string(e.Classification)
	row[colDesc] = e.Description
	return row
}

// UnmarshalEntry converts a CSV row to an entry.
func UnmarshalEntry(record []string) (model.CatalogEntry, error) {
	if len(record) != numFields {
		return model.CatalogEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	name := strings.TrimSpace(record[colName])
	if name == "" {
		return model.CatalogEntry{}, ErrBlankName
	}

	class := model.ParseClassification(record[colClass])
	if !class.Valid() {
		return model.CatalogEntry{}, fmt.Errorf("%w: %q", ErrInvalidClassification, record[colClass])
	}

	return model.CatalogEntry{
		Name:           name,
		Classification: class,
		Description:    record[colDesc],
	}, nil
}
