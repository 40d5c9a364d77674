package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLines(t *testing.T) {
	require.ErrorIs(t, ValidateLines(nil), ErrNoItems)
	require.ErrorIs(t, ValidateLines([]LineRequest{{ProductID: "p1", Quantity: 0}}), ErrInvalidQuantity)
	require.ErrorIs(t, ValidateLines([]LineRequest{{ProductID: "p1", Quantity: 1}, {ProductID: "p2", Quantity: -3}}), ErrInvalidQuantity)
	require.ErrorIs(t, ValidateLines([]LineRequest{{ProductID: " ", Quantity: 1}}), ErrMissingProduct)
	require.NoError(t, ValidateLines([]LineRequest{{ProductID: "p1", Quantity: 2}}))
}

func TestNewOrder_TotalIsExactSumOfSubtotals(t *testing.T) {
	items := []Item{
		{ProductID: "p1", Quantity: 3, Price: decimal.RequireFromString("0.10")},
		{ProductID: "p2", Quantity: 1, Price: decimal.RequireFromString("19.99")},
		{ProductID: "p1", Quantity: 2, Price: decimal.RequireFromString("0.10")},
	}
	order, err := NewOrder("s1", Customer{Name: " Ada "}, items)
	require.NoError(t, err)
	assert.Equal(t, "20.49", order.Total.StringFixed(2))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("20.49")))
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, "Ada", order.Customer.Name)
	assert.Len(t, order.Items, 3)
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
	_, err := ParseStatus("pending")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTransitionTo_Permissive(t *testing.T) {
	order := &Order{Status: StatusCompleted}
	changed, err := order.TransitionTo(StatusPending, PermissivePolicy{})
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, StatusPending, order.Status)
}

func TestTransitionTo_Strict(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusShipped, StatusCompleted, true},
		{StatusShipped, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusProcessing, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			order := &Order{Status: tc.from}
			changed, err := order.TransitionTo(tc.to, StrictPolicy{})
			if !tc.allowed {
				require.ErrorIs(t, err, ErrTransitionNotAllowed)
				require.Equal(t, tc.from, order.Status)
				return
			}
			require.NoError(t, err)
			require.True(t, changed)
			require.Equal(t, tc.to, order.Status)
		})
	}
}

func TestTransitionTo_SameStatusIsNoop(t *testing.T) {
	order := &Order{Status: StatusCompleted}
	changed, err := order.TransitionTo(StatusCompleted, StrictPolicy{})
	require.NoError(t, err)
	require.False(t, changed)
}
