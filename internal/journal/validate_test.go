package journal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/mayores/internal/model"
)

func hasInvariant(errs []ValidationError, n int) bool {
	for _, e := range errs {
		if e.Invariant == n {
			return true
		}
	}
	return false
}

func TestValidate_Balanced(t *testing.T) {
	rows := append(balancedEntry(1, 1, "100.00"), balancedEntry(3, 2, "25.50")...)
	assert.Empty(t, Validate(rows))
}

func TestValidate_Invariant1_Unbalanced(t *testing.T) {
	rows := []model.Movement{
		debitRow(1, 1, "Caja", model.ClassAsset, "100.00"),
		creditRow(2, 1, "Capital Social", model.ClassCapital, "99.00"),
	}
	errs := Validate(rows)
	require.NotEmpty(t, errs)
	assert.Equal(t, 1, errs[0].Invariant)
	assert.Contains(t, errs[0].Error(), "debe (100.00) != haber (99.00)")
}

func TestValidate_Invariant2_SingleRow(t *testing.T) {
	rows := []model.Movement{{ID: 1, TransactionNumber: 1, Account: "Caja", Classification: model.ClassAsset}}
	assert.True(t, hasInvariant(Validate(rows), 2))
}

func TestValidate_Invariant3_BothSides(t *testing.T) {
	rows := balancedEntry(1, 1, "10")
	rows[0].Credit = dec("10")
	rows[1].Debit = dec("10")
	assert.True(t, hasInvariant(Validate(rows), 3))
}

func TestValidate_Invariant3_Negative(t *testing.T) {
	rows := balancedEntry(1, 1, "-10")
	assert.True(t, hasInvariant(Validate(rows), 3))
}

func TestValidate_Invariant4_Unclassified(t *testing.T) {
	rows := balancedEntry(1, 1, "10")
	rows[0].Classification = model.ClassUnknown
	errs := Validate(rows)
	assert.True(t, hasInvariant(errs, 4))
}

func TestValidate_Invariant4_BlankAccount(t *testing.T) {
	rows := balancedEntry(1, 1, "10")
	rows[1].Account = ""
	assert.True(t, hasInvariant(Validate(rows), 4))
}

func TestValidate_Invariant5_Gap(t *testing.T) {
	rows := append(balancedEntry(1, 1, "10"), balancedEntry(3, 3, "10")...)
	errs := Validate(rows)
	require.True(t, hasInvariant(errs, 5))
	for _, e := range errs {
		if e.Invariant == 5 {
			assert.Equal(t, 2, e.Transaction)
		}
	}
}

func TestValidate_Invariant5_WideGapIsOneError(t *testing.T) {
	rows := append(balancedEntry(1, 1, "10"), balancedEntry(3, 5_000_000, "10")...)
	errs := Validate(rows)
	require.Len(t, errs, 1)
	assert.Equal(t, 5, errs[0].Invariant)
	assert.Equal(t, 2, errs[0].Transaction)
	assert.Contains(t, errs[0].Description, "missing asientos 2..4999999 in 1..5000000")
}

func TestValidate_Invariant5_NonPositive(t *testing.T) {
	rows := balancedEntry(1, 0, "10")
	assert.True(t, hasInvariant(Validate(rows), 5))
}

func TestValidate_Invariant6_TooManyDecimals(t *testing.T) {
	rows := balancedEntry(1, 1, "10.123")
	assert.True(t, hasInvariant(Validate(rows), 6))
}

func TestValidate_MultiLegBalanced(t *testing.T) {
	rows := []model.Movement{
		debitRow(1, 1, "Inventarios", model.ClassAsset, "60.00"),
		debitRow(2, 1, "Mobiliario y Equipo", model.ClassAsset, "40.00"),
		creditRow(3, 1, "Proveedores", model.ClassLiability, "100.00"),
	}
	assert.Empty(t, Validate(rows))
}

func TestValidate_ZeroRowAllowed(t *testing.T) {
	rows := balancedEntry(1, 1, "10")
	rows = append(rows, model.Movement{ID: 3, TransactionNumber: 1, Account: "Bancos", Classification: model.ClassAsset, Debit: decimal.Zero})
	assert.Empty(t, Validate(rows))
}

func TestValidate_Empty(t *testing.T) {
	assert.Empty(t, Validate(nil))
}

func TestValidationError_Format(t *testing.T) {
	e := ValidationError{Invariant: 4, Transaction: 2, RowID: 7, Description: "account is blank"}
	assert.Equal(t, "invariant 4 [asiento 2, row 7]: account is blank", e.Error())
}
