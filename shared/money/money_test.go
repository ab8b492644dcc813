package money_test

import (
	"testing"

	"vietour/shared/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func TestUnit(t *testing.T) {
	assert.Equal(t, currency.USD, money.Unit(""))
	assert.Equal(t, currency.USD, money.Unit("not-a-code"))
	assert.Equal(t, currency.MustParseISO("VND"), money.Unit(" vnd "))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		code     string
		contains []string
	}{
		{
			name:     "usd two decimals",
			amount:   decimal.NewFromInt(60),
			code:     "USD",
			contains: []string{"$", "60.00"},
		},
		{
			name:     "vnd has no minor units",
			amount:   decimal.NewFromInt(2400000),
			code:     "VND",
			contains: []string{"2,400,000"},
		},
		{
			name:     "blank code defaults to usd",
			amount:   decimal.RequireFromString("1234.5"),
			code:     "",
			contains: []string{"$", "1,234.50"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := money.Format(tt.amount, tt.code)

			for _, fragment := range tt.contains {
				assert.Contains(t, result, fragment)
			}
		})
	}
}
