package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Validation(t *testing.T) {
	cases := []struct {
		name    string
		storeID string
		pname   string
		sku     string
		price   decimal.Decimal
		stock   int
		wantErr error
	}{
		{"valid", "s1", "Tent", "TENT-1", decimal.RequireFromString("129.99"), 4, nil},
		{"missing store", "", "Tent", "TENT-1", decimal.Zero, 0, ErrMissingStore},
		{"blank name", "s1", "  ", "TENT-1", decimal.Zero, 0, ErrEmptyName},
		{"blank sku", "s1", "Tent", "", decimal.Zero, 0, ErrEmptySKU},
		{"negative price", "s1", "Tent", "TENT-1", decimal.NewFromInt(-1), 0, ErrNegativePrice},
		{"sub-cent price", "s1", "Tent", "TENT-1", decimal.RequireFromString("0.005"), 0, ErrInvalidPrice},
		{"trailing zero decimals", "s1", "Tent", "TENT-1", decimal.RequireFromString("12.500"), 0, nil},
		{"whole price", "s1", "Tent", "TENT-1", decimal.NewFromInt(20), 0, nil},
		{"negative stock", "s1", "Tent", "TENT-1", decimal.Zero, -2, ErrNegativeStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewProduct(tc.storeID, tc.pname, tc.sku, tc.price, tc.stock)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, p.Active)
		})
	}
}

func TestApply_LeavesProductUntouchedOnError(t *testing.T) {
	p, err := NewProduct("s1", "Tent", "TENT-1", decimal.NewFromInt(100), 5)
	require.NoError(t, err)

	stock := -1
	name := "Big Tent"
	require.ErrorIs(t, p.Apply(Patch{Name: &name, Stock: &stock}), ErrNegativeStock)
	require.Equal(t, "Tent", p.Name)
	require.Equal(t, 5, p.Stock)

	inactive := false
	stock = 0
	require.NoError(t, p.Apply(Patch{Name: &name, Stock: &stock, Active: &inactive}))
	require.Equal(t, "Big Tent", p.Name)
	require.Zero(t, p.Stock)
	require.False(t, p.Active)
}

func TestApply_RejectsSubCentPrice(t *testing.T) {
	p, err := NewProduct("s1", "Tent", "TENT-1", decimal.RequireFromString("19.99"), 5)
	require.NoError(t, err)

	price := decimal.RequireFromString("0.005")
	require.ErrorIs(t, p.Apply(Patch{Price: &price}), ErrInvalidPrice)
	require.Equal(t, "19.99", p.Price.StringFixed(2))
}
