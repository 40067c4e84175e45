package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/mayores/internal/model"
)

var sheet = []model.BalanceRow{
	{Account: "Caja", Classification: model.ClassAsset, Amount: dec("1000")},
	{Account: "Proveedores", Classification: model.ClassLiability, Amount: dec("400")},
	{Account: "Capital Social", Classification: model.ClassCapital, Amount: dec("600")},
	{Account: "Sin clase", Classification: model.ClassUnknown, Amount: dec("5")},
}

func TestOpeningForAccount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		side   model.Side
		class  model.Classification
	}{
		{"Caja", "1000", model.SideDebit, model.ClassAsset},
		{"CAJA", "1000", model.SideDebit, model.ClassAsset},
		{"proveedores", "400", model.SideCredit, model.ClassLiability},
		{"Capital Social", "600", model.SideCredit, model.ClassCapital},
		{"Sin clase", "5", model.SideNone, model.ClassUnknown},
		{"Bancos", "0", model.SideNone, model.ClassUnknown},
		{"Caj", "0", model.SideNone, model.ClassUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OpeningForAccount(tt.name, sheet)
			assert.True(t, got.Amount.Equal(dec(tt.amount)), "amount %s", got.Amount)
			assert.Equal(t, tt.side, got.Side)
			assert.Equal(t, tt.class, got.Classification)
		})
	}
}

func TestOpeningForOrder(t *testing.T) {
	process := []model.ProcessRow{
		{Detail: "Orden #001", Product: "Silla", Materials: dec("500"), Labor: dec("300"), Overhead: dec("200"), OrderID: "OP-1"},
		{Detail: "Orden #002", Product: "Mesa", Materials: dec("100")},
	}

	got := OpeningForOrder("orden #001", process)
	assert.True(t, got.Exists)
	assert.True(t, got.Amount.Equal(dec("1000")))
	assert.Equal(t, "Silla", got.Product)
	assert.Equal(t, "OP-1", got.OrderID)

	got = OpeningForOrder("OP-1", process)
	assert.True(t, got.Exists)
	assert.Equal(t, "Silla", got.Product)

	got = OpeningForOrder("Orden #003", process)
	assert.False(t, got.Exists)
	assert.True(t, got.Amount.IsZero())
	assert.Empty(t, got.Product)
}
