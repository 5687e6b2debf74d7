package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmelo/finledger/internal/domain/ledger"
)

// GetTransactionsUseCase serves bounded range scans over an account's
// history: begin inclusive, end exclusive, newest first.
type GetTransactionsUseCase struct {
	entries ledger.Repository
}

// NewGetTransactionsUseCase creates a new GetTransactionsUseCase.
func NewGetTransactionsUseCase(entries ledger.Repository) *GetTransactionsUseCase {
	return &GetTransactionsUseCase{entries: entries}
}

// Execute returns up to limit entries in [begin, end), most recent first.
// limit <= 0 means unbounded.
func (uc *GetTransactionsUseCase) Execute(ctx context.Context, accountID uuid.UUID, begin, end time.Time, limit int) ([]*ledger.Entry, error) {
	if err := ledger.ValidateRange(begin, end); err != nil {
		return nil, err
	}
	return uc.entries.Query(ctx, accountID, begin, end, limit)
}
