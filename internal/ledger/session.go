package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cleared-dev/mayores/internal/journal"
	"github.com/cleared-dev/mayores/internal/model"
	"github.com/cleared-dev/mayores/internal/payload"
	"github.com/cleared-dev/mayores/internal/store"
)

var (
	// ErrIncompleteSelection indicates the Balance or Journal report was not chosen.
	ErrIncompleteSelection = errors.New("ledger: balance and journal reports must both be selected")
	// ErrReportNotFound indicates a selected report id does not exist.
	ErrReportNotFound = errors.New("ledger: report not found")
	// ErrWrongProgram indicates a selected report belongs to another sub-program.
	ErrWrongProgram = errors.New("ledger: report is from another program")
)

// ReportReader loads reports by id.
type ReportReader interface {
	Get(ctx context.Context, id int64) (model.Report, error)
}

// Selection names the reports a session is built from. Inventory is optional.
type Selection struct {
	BalanceID   int64
	JournalID   int64
	InventoryID int64
}

// Complete reports whether both required reports are chosen.
func (s Selection) Complete() bool {
	return s.BalanceID > 0 && s.JournalID > 0
}

// Session holds the decoded rows of one selection and derives schedules
// from them on demand.
type Session struct {
	balance   []model.BalanceRow
	movements []model.Movement
	process   []model.ProcessRow
	logger    *slog.Logger
}

// NewSession builds a session over rows that are already decoded.
func NewSession(balance []model.BalanceRow, movements []model.Movement, process []model.ProcessRow, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		balance:   balance,
		movements: movements,
		process:   process,
		logger:    logger,
	}
}

// Open loads the selected reports and decodes their rows.
func Open(ctx context.Context, reports ReportReader, sel Selection, logger *slog.Logger) (*Session, error) {
	if !sel.Complete() {
		return nil, ErrIncompleteSelection
	}

	raw, err := load(ctx, reports, sel.BalanceID, model.ProgramBalance)
	if err != nil {
		return nil, err
	}
	balance, err := payload.DecodeBalance(raw.Data)
	if err != nil {
		return nil, fmt.Errorf("report %d: %w", sel.BalanceID, err)
	}

	raw, err = load(ctx, reports, sel.JournalID, model.ProgramJournal)
	if err != nil {
		return nil, err
	}
	movements, err := payload.DecodeJournal(raw.Data)
	if err != nil {
		return nil, fmt.Errorf("report %d: %w", sel.JournalID, err)
	}

	var process []model.ProcessRow
	if sel.InventoryID > 0 {
		raw, err = load(ctx, reports, sel.InventoryID, model.ProgramInventory)
		if err != nil {
			return nil, err
		}
		_, process, err = payload.DecodeInventory(raw.Data)
		if err != nil {
			return nil, fmt.Errorf("report %d: %w", sel.InventoryID, err)
		}
	}

	s := NewSession(balance, movements, process, logger)
	s.logger.Debug("ledger session opened",
		"balance_rows", len(balance),
		"journal_rows", len(movements),
		"process_rows", len(process))
	return s, nil
}

func load(ctx context.Context, reports ReportReader, id int64, want model.ProgramID) (model.Report, error) {
	r, err := reports.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Report{}, fmt.Errorf("%w: %d", ErrReportNotFound, id)
	}
	if err != nil {
		return model.Report{}, fmt.Errorf("loading report %d: %w", id, err)
	}
	if r.ProgramID != want {
		return model.Report{}, fmt.Errorf("%w: report %d is %s, want %s", ErrWrongProgram, id, r.ProgramID, want)
	}
	return r, nil
}

// Accounts lists every account a schedule can be built for.
func (s *Session) Accounts() []AvailableAccount {
	return AvailableAccounts(s.balance, s.movements)
}

// Orders lists the production orders of the work-in-process snapshot.
func (s *Session) Orders() []AvailableOrder {
	return AvailableOrders(s.process)
}

// Summary totals the journal per account.
func (s *Session) Summary() []journal.AccountSummary {
	return journal.SummarizeByAccount(s.movements)
}

// AccountSchedule builds the schedule for an account. When the balance sheet
// does not classify the account, the class recorded on its journal rows is
// used; with neither, the debit-normal convention applies and a warning is
// logged.
func (s *Session) AccountSchedule(name string) Schedule {
	opening := OpeningForAccount(name, s.balance)
	movements := journal.MovementsForAccount(name, s.movements)
	if !opening.Classification.Valid() {
		opening.Classification = journalClassification(movements)
	}

	sched := BuildAccountSchedule(name, opening, movements)
	if sched.FallbackConvention {
		s.logger.Warn("account has no classification, using debit-normal convention",
			"account", name,
			"movements", len(movements))
	}
	return sched
}

// OrderSchedule builds the schedule for a production order. label may be
// the order's detail text or its id.
func (s *Session) OrderSchedule(label string) Schedule {
	opening := OpeningForOrder(label, s.process)
	detail := label
	orders := s.Orders()
	if i := findOrder(label, orders); i >= 0 {
		detail = orders[i].Detail
	}
	movements := journal.MovementsForOrder(detail, opening.OrderID, s.movements)
	if !opening.Exists {
		s.logger.Debug("order not in work-in-process snapshot, opening at zero", "order", label)
	}
	return BuildOrderSchedule(detail, opening, movements)
}

// Schedule dispatches to OrderSchedule when name is a production order and
// to AccountSchedule otherwise.
func (s *Session) Schedule(name string) Schedule {
	if IsOrder(name, s.Orders()) {
		return s.OrderSchedule(name)
	}
	return s.AccountSchedule(name)
}

func journalClassification(movements []model.Movement) model.Classification {
	for _, m := range movements {
		if m.Classification.Valid() {
			return m.Classification
		}
	}
	return model.ClassUnknown
}
