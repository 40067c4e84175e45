package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/mayores/internal/model"
	"github.com/cleared-dev/mayores/internal/store"
)

type fakeReports map[int64]model.Report

func (f fakeReports) Get(_ context.Context, id int64) (model.Report, error) {
	r, ok := f[id]
	if !ok {
		return model.Report{}, fmt.Errorf("report %d: %w", id, store.ErrNotFound)
	}
	return r, nil
}

func scenarioReports() fakeReports {
	return fakeReports{
		1: {ID: 1, ProgramID: model.ProgramBalance, Data: json.RawMessage(`[
			{"cuenta": "Caja", "clasificacion": "Activo", "monto": 1000},
			{"cuenta": "Capital Social", "clasificacion": "Capital", "monto": 1000}
		]`)},
		2: {ID: 2, ProgramID: model.ProgramJournal, Data: json.RawMessage(`[
			{"id": 1, "fecha": "2025-01-15", "noAsiento": 1, "cuenta": "Caja", "clasificacion": "Activo", "debe": 500, "haber": 0, "concepto": "Aportación"},
			{"id": 2, "fecha": "2025-01-15", "noAsiento": 1, "cuenta": "Capital Social", "clasificacion": "Capital", "debe": 0, "haber": 500, "concepto": "Aportación"},
			{"id": 3, "fecha": "2025-01-20", "noAsiento": 2, "cuenta": "Orden #001", "clasificacion": "Activo", "debe": 200, "haber": 0, "concepto": "Materiales"},
			{"id": 4, "fecha": "2025-01-20", "noAsiento": 2, "cuenta": "Caja", "clasificacion": "Activo", "debe": 0, "haber": 200, "concepto": "Materiales"},
			{"id": 5, "fecha": "2025-01-21", "noAsiento": 3, "cuenta": "Anticipos", "clasificacion": "Pasivo", "debe": 0, "haber": 80, "concepto": "Anticipo"},
			{"id": 6, "fecha": "2025-01-21", "noAsiento": 3, "cuenta": "Caja", "clasificacion": "Activo", "debe": 80, "haber": 0, "concepto": "Anticipo"}
		]`)},
		3: {ID: 3, ProgramID: model.ProgramInventory, Data: json.RawMessage(`{
			"inventory": {"rows": []},
			"process": {"rows": [{"detalle": "Orden #001", "producto": "Silla", "cantidad": 10, "materiales": 500, "manoObra": 300, "gastosF": 200}]}
		}`)},
	}
}

func TestSelection_Complete(t *testing.T) {
	assert.True(t, Selection{BalanceID: 1, JournalID: 2}.Complete())
	assert.True(t, Selection{BalanceID: 1, JournalID: 2, InventoryID: 3}.Complete())
	assert.False(t, Selection{BalanceID: 1}.Complete())
	assert.False(t, Selection{JournalID: 2, InventoryID: 3}.Complete())
}

func TestOpen_IncompleteSelection(t *testing.T) {
	_, err := Open(context.Background(), scenarioReports(), Selection{BalanceID: 1}, nil)
	assert.ErrorIs(t, err, ErrIncompleteSelection)
}

func TestOpen_ReportNotFound(t *testing.T) {
	_, err := Open(context.Background(), scenarioReports(), Selection{BalanceID: 1, JournalID: 9}, nil)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestOpen_WrongProgram(t *testing.T) {
	_, err := Open(context.Background(), scenarioReports(), Selection{BalanceID: 2, JournalID: 1}, nil)
	assert.ErrorIs(t, err, ErrWrongProgram)
}

func TestSession_Scenario(t *testing.T) {
	s, err := Open(context.Background(), scenarioReports(), Selection{BalanceID: 1, JournalID: 2}, nil)
	require.NoError(t, err)

	caja := s.AccountSchedule("Caja")
	assert.True(t, caja.OpeningAmount.Equal(dec("1000")))
	assert.Equal(t, model.SideDebit, caja.OpeningSide)
	require.Len(t, caja.Lines, 3)
	assert.Equal(t, []string{"1500", "1300", "1380"}, balances(caja.Lines))
	assert.Equal(t, LabelDebtor, caja.ClosingLabel)

	capital := s.AccountSchedule("capital social")
	assert.Equal(t, model.SideCredit, capital.OpeningSide)
	assert.Equal(t, []string{"1500"}, balances(capital.Lines))
	assert.True(t, capital.ClosingBalance.Equal(dec("1500")))
	assert.Equal(t, LabelCreditor, capital.ClosingLabel)
	assert.True(t, capital.TotalCredit.Equal(dec("1500")))
	assert.True(t, capital.TotalDebit.IsZero())
}

func TestSession_FirstTransactionOnly(t *testing.T) {
	balance := []model.BalanceRow{
		{Account: "Caja", Classification: model.ClassAsset, Amount: dec("1000")},
		{Account: "Capital Social", Classification: model.ClassCapital, Amount: dec("1000")},
	}
	movements := []model.Movement{
		move(15, 1, "Caja", "500", ""),
		move(15, 1, "Capital Social", "", "500"),
	}
	s := NewSession(balance, movements, nil, nil)

	caja := s.AccountSchedule("Caja")
	assert.True(t, caja.ClosingBalance.Equal(dec("1500")))
	assert.Equal(t, LabelDebtor, caja.ClosingLabel)

	capital := s.AccountSchedule("Capital Social")
	assert.True(t, capital.ClosingBalance.Equal(dec("1500")))
	assert.Equal(t, LabelCreditor, capital.ClosingLabel)
}

func TestSession_SameDayOrderedByTransaction(t *testing.T) {
	balance := []model.BalanceRow{{Account: "Caja", Classification: model.ClassAsset, Amount: dec("100")}}
	movements := []model.Movement{
		move(3, 2, "Caja", "", "150"),
		move(3, 1, "Caja", "100", ""),
		move(1, 3, "Caja", "10", ""),
	}
	s := NewSession(balance, movements, nil, nil)

	sched := s.AccountSchedule("Caja")
	assert.Equal(t, []string{"110", "210", "60"}, balances(sched.Lines))
}

func TestSession_JournalClassificationUsedWhenNotInBalance(t *testing.T) {
	s, err := Open(context.Background(), scenarioReports(), Selection{BalanceID: 1, JournalID: 2}, nil)
	require.NoError(t, err)

	sched := s.AccountSchedule("Anticipos")
	assert.False(t, sched.FallbackConvention)
	assert.Equal(t, model.ClassLiability, sched.Classification)
	assert.True(t, sched.OpeningAmount.IsZero())
	assert.True(t, sched.ClosingBalance.Equal(dec("80")))
	assert.Equal(t, LabelCreditor, sched.ClosingLabel)
}

func TestSession_FallbackLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := NewSession(nil, []model.Movement{move(1, 1, "Varios", "40", "")}, nil, logger)

	sched := s.AccountSchedule("Varios")

	assert.True(t, sched.FallbackConvention)
	assert.True(t, sched.ClosingBalance.Equal(dec("40")))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "account=Varios")
}

func TestSession_Accounts(t *testing.T) {
	s, err := Open(context.Background(), scenarioReports(), Selection{BalanceID: 1, JournalID: 2}, nil)
	require.NoError(t, err)

	names := []string{}
	for _, a := range s.Accounts() {
		names = append(names, a.Account)
	}
	assert.Equal(t, []string{"Anticipos", "Caja", "Capital Social", "Orden #001"}, names)
	assert.Empty(t, s.Orders())
}

func TestSession_OrderSchedule(t *testing.T) {
	s, err := Open(context.Background(), scenarioReports(), Selection{BalanceID: 1, JournalID: 2, InventoryID: 3}, nil)
	require.NoError(t, err)

	orders := s.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "Silla", orders[0].Product)

	sched := s.Schedule("orden #001")
	assert.Equal(t, KindOrder, sched.Kind)
	assert.Equal(t, "Orden #001", sched.Subject)
	assert.True(t, sched.OpeningAmount.Equal(dec("1000")))
	assert.Equal(t, []string{"1200"}, balances(sched.Lines))
	assert.True(t, sched.AccumulatedCost().Equal(dec("1200")))
	assert.True(t, sched.TotalDebit.Equal(dec("1200")))

	assert.Equal(t, KindAccount, s.Schedule("Caja").Kind)
}

func TestSession_OrderMatchedByID(t *testing.T) {
	process := []model.ProcessRow{{Detail: "Orden #001", Product: "Silla", Materials: dec("100"), OrderID: "OP-1"}}
	renamed := move(2, 1, "Orden 1 (sillas)", "30", "")
	renamed.OrderID = "OP-1"
	other := move(2, 1, "Orden #001", "5", "")
	other.OrderID = "OP-2"
	legacy := move(3, 2, "Orden #001", "7", "")
	s := NewSession(nil, []model.Movement{renamed, other, legacy}, process, nil)

	sched := s.OrderSchedule("OP-1")
	assert.Equal(t, "Orden #001", sched.Subject)
	assert.Equal(t, []string{"130", "137"}, balances(sched.Lines))
}

func TestSession_Summary(t *testing.T) {
	s, err := Open(context.Background(), scenarioReports(), Selection{BalanceID: 1, JournalID: 2}, nil)
	require.NoError(t, err)

	summary := s.Summary()
	require.NotEmpty(t, summary)
	assert.Equal(t, "Caja", summary[0].Account)
	assert.Equal(t, 3, summary[0].MovementCount)
}
