package postgres

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NUMERIC columns travel as strings so no precision is lost between the
// store and the engine's decimals.

func decimalFromNumeric(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty numeric string")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse numeric %q: %w", s, err)
	}
	return d, nil
}

func numericFromDecimal(d decimal.Decimal) string {
	return d.String()
}
