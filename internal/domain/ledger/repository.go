package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the storage port for the transaction history.
type Repository interface {
	// Append stages one entry. Inside a transaction the row becomes visible
	// only at commit, with its EventTime assigned by the store.
	Append(ctx context.Context, e *Entry) error

	// Query returns entries with begin <= EventTime < end, newest first.
	// limit > 0 truncates to the most recent limit entries; 0 means
	// unbounded. The caller validates the range first.
	Query(ctx context.Context, accountID uuid.UUID, begin, end time.Time, limit int) ([]*Entry, error)
}
