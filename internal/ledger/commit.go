package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cleared-dev/mayores/internal/journal"
	"github.com/cleared-dev/mayores/internal/model"
	"github.com/cleared-dev/mayores/internal/payload"
)

// ErrInvalidJournal indicates a journal that breaks a posting rule.
var ErrInvalidJournal = errors.New("ledger: journal is not valid")

// ReportSaver persists reports.
type ReportSaver interface {
	Save(ctx context.Context, r model.Report) (model.Report, error)
}

type journalTotals struct {
	Debit        model.Amount `json:"debe"`
	Credit       model.Amount `json:"haber"`
	Transactions int          `json:"asientos"`
}

// CommitJournal checks every transaction in rows and saves them as a journal
// report under the user, name, date and metadata of r. Nothing is saved unless all rules hold; the returned error then
// wraps ErrInvalidJournal and lists each violation.
func CommitJournal(ctx context.Context, reports ReportSaver, r model.Report, rows []model.Movement) (model.Report, error) {
	if verrs := journal.Validate(rows); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, v := range verrs {
			errs[i] = v
		}
		return model.Report{}, fmt.Errorf("%w: %w", ErrInvalidJournal, errors.Join(errs...))
	}

	data, err := payload.EncodeJournal(rows)
	if err != nil {
		return model.Report{}, fmt.Errorf("encoding journal: %w", err)
	}
	debit, credit := journal.Totals(rows)
	totals, err := json.Marshal(journalTotals{
		Debit:        model.NewAmount(debit),
		Credit:       model.NewAmount(credit),
		Transactions: len(journal.TransactionNumbers(rows)),
	})
	if err != nil {
		return model.Report{}, fmt.Errorf("encoding journal totals: %w", err)
	}

	r.ProgramID = model.ProgramJournal
	r.ReportType = ""
	r.Data = data
	r.Totals = totals
	saved, err := reports.Save(ctx, r)
	if err != nil {
		return model.Report{}, fmt.Errorf("saving journal: %w", err)
	}
	return saved, nil
}
