package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalFromNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"44", "44"},
		{"43.50", "43.5"},
		{"  19.99 ", "19.99"},
		{"0.000000001", "0.000000001"},
		{"123456789012345678901234567890.12", "123456789012345678901234567890.12"},
	}
	for _, tt := range tests {
		d, err := decimalFromNumeric(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, d.String(), "input %q", tt.in)
	}
}

func TestDecimalFromNumeric_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "1.2.3"} {
		_, err := decimalFromNumeric(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestNumericFromDecimal_RoundTrip(t *testing.T) {
	for _, raw := range []string{"0", "1", "42.42", "-10", "0.001"} {
		d, err := decimal.NewFromString(raw)
		require.NoError(t, err)

		back, err := decimalFromNumeric(numericFromDecimal(d))
		require.NoError(t, err)
		assert.True(t, d.Equal(back), "round trip of %s", raw)
	}
}
