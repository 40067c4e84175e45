package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/mayores/internal/model"
)

func TestBuildAccountSchedule_NoMovements(t *testing.T) {
	opening := AccountOpening{Amount: dec("100"), Side: model.SideDebit, Classification: model.ClassAsset}

	s := BuildAccountSchedule("Bancos", opening, nil)

	assert.Equal(t, KindAccount, s.Kind)
	assert.Empty(t, s.Lines)
	assert.True(t, s.ClosingBalance.Equal(dec("100")))
	assert.Equal(t, LabelDebtor, s.ClosingLabel)
	assert.True(t, s.TotalDebit.Equal(dec("100")))
	assert.True(t, s.TotalCredit.IsZero())
	assert.False(t, s.FallbackConvention)
}

func TestBuildAccountSchedule_AssetRunningBalance(t *testing.T) {
	opening := AccountOpening{Amount: dec("1000"), Side: model.SideDebit, Classification: model.ClassAsset}
	movements := []model.Movement{
		move(2, 1, "Caja", "200", ""),
		move(3, 2, "Caja", "", "300"),
	}

	s := BuildAccountSchedule("Caja", opening, movements)

	require.Len(t, s.Lines, 2)
	assert.Equal(t, []string{"1200", "900"}, balances(s.Lines))
	assert.True(t, s.ClosingBalance.Equal(dec("900")))
	assert.Equal(t, LabelDebtor, s.ClosingLabel)
	assert.True(t, s.TotalDebit.Equal(dec("1200")))
	assert.True(t, s.TotalCredit.Equal(dec("300")))
}

func TestBuildAccountSchedule_LiabilitySignFlip(t *testing.T) {
	opening := AccountOpening{Amount: dec("500"), Side: model.SideCredit, Classification: model.ClassLiability}

	s := BuildAccountSchedule("Proveedores", opening, []model.Movement{move(5, 1, "Proveedores", "100", "")})

	assert.Equal(t, []string{"400"}, balances(s.Lines))
	assert.Equal(t, LabelCreditor, s.ClosingLabel)
	assert.True(t, s.TotalDebit.Equal(dec("100")))
	assert.True(t, s.TotalCredit.Equal(dec("500")))
}

func TestBuildAccountSchedule_Labels(t *testing.T) {
	tests := []struct {
		name  string
		class model.Classification
		open  string
		debit string
		want  Label
	}{
		{"asset positive", model.ClassAsset, "10", "0", LabelDebtor},
		{"asset zero", model.ClassAsset, "0", "0", LabelDebtor},
		{"asset overdrawn", model.ClassAsset, "10", "-20", LabelCreditor},
		{"capital positive", model.ClassCapital, "10", "0", LabelCreditor},
		{"capital zero", model.ClassCapital, "0", "0", LabelCreditor},
		{"liability negative", model.ClassLiability, "10", "20", LabelDebtor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opening := AccountOpening{Amount: dec(tt.open), Side: tt.class.NormalSide(), Classification: tt.class}
			var movements []model.Movement
			if tt.debit != "0" {
				m := move(1, 1, "x", "", "")
				if d := dec(tt.debit); d.IsNegative() {
					m.Credit = d.Neg()
				} else {
					m.Debit = d
				}
				movements = append(movements, m)
			}
			s := BuildAccountSchedule("x", opening, movements)
			assert.Equal(t, tt.want, s.ClosingLabel)
			assert.False(t, s.ClosingMagnitude().IsNegative())
		})
	}
}

func TestBuildAccountSchedule_UnknownClassificationFallback(t *testing.T) {
	movements := []model.Movement{
		move(1, 1, "Misc", "50", ""),
		move(2, 2, "Misc", "", "20"),
	}

	s := BuildAccountSchedule("Misc", AccountOpening{Amount: decimal.Zero}, movements)

	assert.True(t, s.FallbackConvention)
	assert.Equal(t, []string{"50", "30"}, balances(s.Lines))
	assert.Equal(t, LabelDebtor, s.ClosingLabel)
	assert.Equal(t, model.SideNone, s.OpeningSide)
	assert.True(t, s.TotalDebit.Equal(dec("50")))
	assert.True(t, s.TotalCredit.Equal(dec("20")))
}

func TestBuildAccountSchedule_ZeroOpening(t *testing.T) {
	opening := AccountOpening{Amount: decimal.Zero, Side: model.SideDebit, Classification: model.ClassAsset}

	s := BuildAccountSchedule("Bancos", opening, []model.Movement{move(1, 1, "Bancos", "75", "")})

	assert.False(t, s.ShowOpening())
	assert.True(t, s.TotalDebit.Equal(dec("75")))
	assert.True(t, s.ClosingBalance.Equal(dec("75")))
}

func TestBuildOrderSchedule_Accumulation(t *testing.T) {
	opening := OrderOpening{Amount: dec("1000"), Exists: true, Product: "Silla"}

	s := BuildOrderSchedule("Orden #001", opening, []model.Movement{move(4, 1, "Orden #001", "200", "50")})

	assert.Equal(t, KindOrder, s.Kind)
	assert.Equal(t, []string{"1150"}, balances(s.Lines))
	assert.Equal(t, LabelNone, s.ClosingLabel)
	assert.Equal(t, model.SideDebit, s.OpeningSide)
	assert.True(t, s.TotalDebit.Equal(dec("1200")))
	assert.True(t, s.TotalCredit.Equal(dec("50")))
	assert.True(t, s.AccumulatedCost().Equal(dec("1150")))
	assert.Equal(t, "Silla", s.Product)
}

func TestBuildOrderSchedule_NoOpening(t *testing.T) {
	s := BuildOrderSchedule("Orden #009", OrderOpening{Amount: decimal.Zero}, nil)

	assert.False(t, s.ShowOpening())
	assert.True(t, s.ClosingBalance.IsZero())
	assert.True(t, s.TotalDebit.IsZero())
}
