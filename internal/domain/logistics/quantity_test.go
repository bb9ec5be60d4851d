package logistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"15 kg", 15},
		{"25.67 g", 26},
		{"2.5 boxes", 2},
		{"3.5", 4},
		{"0", 0},
		{"  7 bags", 7},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseQuantity(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects text without a leading number", func(t *testing.T) {
		_, err := ParseQuantity("about 5 kg")

		assert.EqualError(t, err, "Invalid quantity format: 'about 5 kg'. Please include a number.")
	})
}

func TestExceedsError(t *testing.T) {
	err := ExceedsError(30, 20, "Rice")

	assert.EqualError(t, err, "Quantity (30) exceeds available quantity (20) for Rice")
}

func TestReconcile(t *testing.T) {
	line := func(food, qty string) *Delivery {
		d := &Delivery{}
		if food != "" {
			d.FoodID = strPtr(food)
		}
		if qty != "" {
			d.DeliveryQuantity = strPtr(qty)
		}
		return d
	}

	tests := []struct {
		name   string
		before *Delivery
		after  *Delivery
		want   []StockMove
	}{
		{"create charges quantity", nil, line("F1", "10 kg"), []StockMove{{FoodID: "F1", Requested: 10}}},
		{"create without item", nil, line("", "10 kg"), nil},
		{"same item same quantity", line("F1", "10"), line("F1", "10 kg"), nil},
		{"same item increase", line("F1", "10"), line("F1", "15"), []StockMove{{FoodID: "F1", Requested: 15, Returned: 10}}},
		{"same item decrease", line("F1", "10"), line("F1", "4"), []StockMove{{FoodID: "F1", Requested: 4, Returned: 10}}},
		{"item changed", line("F1", "10"), line("F2", "6"), []StockMove{{FoodID: "F1", Returned: 10}, {FoodID: "F2", Requested: 6}}},
		{"item cleared", line("F1", "10"), line("", "10"), []StockMove{{FoodID: "F1", Returned: 10}}},
		{"item newly assigned", line("", ""), line("F2", "3"), []StockMove{{FoodID: "F2", Requested: 3}}},
		{"legacy bad quantity counts as zero", line("F1", "lots"), line("F1", "5"), []StockMove{{FoodID: "F1", Requested: 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reconcile(tt.before, tt.after)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("new quantity must parse", func(t *testing.T) {
		_, err := Reconcile(nil, line("F1", "some"))
		assert.Error(t, err)
	})
}

func TestStockMove_Delta(t *testing.T) {
	assert.Equal(t, -5, StockMove{Requested: 15, Returned: 10}.Delta())
	assert.Equal(t, 6, StockMove{Requested: 4, Returned: 10}.Delta())
}
