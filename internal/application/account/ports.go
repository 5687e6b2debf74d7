package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceCache is an optional bounded-staleness read path for balance
// lookups. A miss, an error, or an open breaker all fall through to a strong
// read; mutations never touch the cache.
type BalanceCache interface {
	// GetBalance returns the cached balance and whether it was present.
	GetBalance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, bool)

	// SetBalance stores a balance with the cache's staleness bound as TTL.
	SetBalance(ctx context.Context, accountID uuid.UUID, balance decimal.Decimal)
}
