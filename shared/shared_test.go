package shared_test

import (
	"testing"

	"vietour/shared"
	"vietour/shared/dto"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "one", input: "1", expected: boolPtr(true)},
		{name: "garbage returns nil", input: "live", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, shared.CalculateTotalPage(0, 10))
	assert.Equal(t, 1, shared.CalculateTotalPage(5, 0))
	assert.Equal(t, 1, shared.CalculateTotalPage(10, 10))
	assert.Equal(t, 2, shared.CalculateTotalPage(11, 10))
	assert.Equal(t, 3, shared.CalculateTotalPage(25, 10))
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("booking-1", "id", "bookings")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "booking-1"}, args)
	assert.Equal(t, dto.FilterGroupOperatorAnd, group.Operator)
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "VND", shared.NormalizeCurrency(" vnd ", "USD"))
	assert.Equal(t, "USD", shared.NormalizeCurrency("", "USD"))
	assert.Equal(t, "EUR", shared.NormalizeCurrency("EUR", "USD"))
}
