package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmelo/finledger/internal/domain/errors"
)

// Entry is one immutable row of the append-only transaction history.
//
// Identity is (AccountID, EventTime); EventTime is assigned by the store at
// commit and is unique and monotonically increasing within an account, so it
// doubles as the sort key. Entries are never updated or deleted.
type Entry struct {
	AccountID   uuid.UUID
	EventTime   time.Time
	IsCredit    bool
	Amount      decimal.Decimal
	Description string
}

// NewEntry stages an entry for append. Amount must be strictly positive;
// direction is carried by IsCredit, never by sign. EventTime stays zero and
// is filled in by the store.
func NewEntry(accountID uuid.UUID, isCredit bool, amount decimal.Decimal, description string) (*Entry, error) {
	if !amount.IsPositive() {
		return nil, errors.InvalidArgument("Expected positive numeric value, found: %s", amount)
	}
	return &Entry{
		AccountID:   accountID,
		IsCredit:    isCredit,
		Amount:      amount,
		Description: description,
	}, nil
}

// ValidateRange enforces the query window rule: begin inclusive, end
// exclusive, begin not after end.
func ValidateRange(begin, end time.Time) error {
	if begin.After(end) {
		return errors.InvalidArgument(
			"Invalid timestamp range: begin timestamp %s is after end timestamp %s",
			begin.UTC().Format(time.RFC3339Nano), end.UTC().Format(time.RFC3339Nano))
	}
	return nil
}
