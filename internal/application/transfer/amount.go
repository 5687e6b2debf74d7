package transfer

import (
	"github.com/shopspring/decimal"

	"github.com/dmelo/finledger/internal/domain/errors"
)

// ParseAmount converts a caller-supplied amount into a decimal, rejecting
// anything that is not a strictly positive numeric value. Validation happens
// before any account state is read.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.InvalidArgument("Invalid amount - %s. Expected a NUMERIC value", raw)
	}
	if !amount.IsPositive() {
		return decimal.Zero, errors.InvalidArgument("Expected positive numeric value, found: %s", raw)
	}
	return amount, nil
}
