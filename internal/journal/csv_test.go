package journal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/mayores/internal/model"
)

func TestRoundTrip(t *testing.T) {
	rows := []model.Movement{
		{
			ID:                1,
			Date:              date(2025, 1, 3),
			TransactionNumber: 1,
			Account:           "Caja",
			Classification:    model.ClassAsset,
			Debit:             dec("500.00"),
			Credit:            decimal.Zero,
			Memo:              "Aportación inicial",
		},
		{
			ID:                2,
			Date:              date(2025, 1, 3),
			TransactionNumber: 1,
			Account:           "Capital Social",
			Classification:    model.ClassCapital,
			Debit:             decimal.Zero,
			Credit:            dec("500.00"),
			Memo:              "Aportación inicial",
		},
	}

	var buf bytes.Buffer
	err := WriteMovements(&buf, rows)
	require.NoError(t, err)

	got, err := ReadMovements(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range rows {
		assert.Equal(t, rows[i].ID, got[i].ID)
		assert.Equal(t, rows[i].TransactionNumber, got[i].TransactionNumber)
		assert.True(t, rows[i].Date.Equal(got[i].Date))
		assert.Equal(t, rows[i].Account, got[i].Account)
		assert.Equal(t, rows[i].Classification, got[i].Classification)
		assert.True(t, rows[i].Debit.Equal(got[i].Debit), "debit row %d", i)
		assert.True(t, rows[i].Credit.Equal(got[i].Credit), "credit row %d", i)
		assert.Equal(t, rows[i].Memo, got[i].Memo)
	}
}

func TestZeroAmountsAreBlank(t *testing.T) {
	m := model.Movement{ID: 1, TransactionNumber: 1, Account: "Caja", Debit: dec("10"), Credit: decimal.Zero}
	row := MarshalMovement(m)
	assert.Equal(t, "10.00", row[colDebit])
	assert.Empty(t, row[colCredit])
}

func TestMalformedAmountReadsAsZero(t *testing.T) {
	in := Header + "\n1,1,2025-01-03,Caja,Activo,abc,,memo,\n"
	rows, err := ReadMovements(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Debit.IsZero())
}

func TestBadTransactionNumber(t *testing.T) {
	in := Header + "\n1,x,2025-01-03,Caja,Activo,10,,,\n"
	_, err := ReadMovements(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "parsing asiento")
}

func TestBadDate(t *testing.T) {
	in := Header + "\n1,1,03/01/2025,Caja,Activo,10,,,\n"
	_, err := ReadMovements(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestSpecialCharactersInMemo(t *testing.T) {
	m := model.Movement{ID: 1, TransactionNumber: 1, Account: "Caja", Memo: `Pago "urgente", factura 12`}

	var buf bytes.Buffer
	require.NoError(t, WriteMovements(&buf, []model.Movement{m}))

	got, err := ReadMovements(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, m.Memo, got[0].Memo)
}

func TestReadMovements_Empty(t *testing.T) {
	rows, err := ReadMovements(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadMovements_HeaderOnly(t *testing.T) {
	rows, err := ReadMovements(strings.NewReader(Header + "\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
