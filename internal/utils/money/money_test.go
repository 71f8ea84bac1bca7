package money_test

import (
	"testing"

	"github.com/mauzoapp/mauzo_backend/internal/utils/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundMinor(t *testing.T) {
	assert.Equal(t, "10.13", money.RoundMinor(decimal.NewFromFloat(10.125)).String())
	assert.Equal(t, "10.12", money.RoundMinor(decimal.NewFromFloat(10.124)).String())
	assert.Equal(t, "10", money.RoundMinor(decimal.NewFromInt(10)).String())
}

func TestChangeDue(t *testing.T) {
	tests := []struct {
		name        string
		totalAmount decimal.Decimal
		amountPaid  decimal.Decimal
		want        string
	}{
		{
			name:        "exact payment has no change",
			totalAmount: decimal.NewFromInt(1000),
			amountPaid:  decimal.NewFromInt(1000),
			want:        "0",
		},
		{
			name:        "overpayment returns change",
			totalAmount: decimal.NewFromInt(1000),
			amountPaid:  decimal.NewFromInt(1500),
			want:        "500",
		},
		{
			name:        "underpayment owes no change",
			totalAmount: decimal.NewFromInt(1000),
			amountPaid:  decimal.NewFromInt(400),
			want:        "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.ChangeDue(tt.totalAmount, tt.amountPaid).String())
		})
	}
}

func TestOutstanding(t *testing.T) {
	assert.Equal(t, "600", money.Outstanding(decimal.NewFromInt(1000), decimal.NewFromInt(400)).String())
	assert.Equal(t, "0", money.Outstanding(decimal.NewFromInt(1000), decimal.NewFromInt(1200)).String())
}

func TestCanonical_RoundTrip(t *testing.T) {
	original := decimal.NewFromFloat(1234.5678)
	parsed, err := decimal.NewFromString(money.Canonical(original))
	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))
}
