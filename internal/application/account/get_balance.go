package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmelo/finledger/internal/domain/account"
	"github.com/dmelo/finledger/internal/domain/errors"
)

// GetBalanceUseCase serves read-only balance lookups. With a cache attached
// the lookup tolerates a few seconds of staleness; without one every lookup
// is a single-use strong read.
type GetBalanceUseCase struct {
	accounts account.Repository
	cache    BalanceCache
}

// NewGetBalanceUseCase creates a new GetBalanceUseCase. cache may be nil.
func NewGetBalanceUseCase(accounts account.Repository, cache BalanceCache) *GetBalanceUseCase {
	return &GetBalanceUseCase{accounts: accounts, cache: cache}
}

// Execute returns the account's balance.
func (uc *GetBalanceUseCase) Execute(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	if uc.cache != nil {
		if balance, ok := uc.cache.GetBalance(ctx, accountID); ok {
			return balance, nil
		}
	}

	accounts, err := uc.accounts.Get(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	a, ok := accounts[accountID]
	if !ok {
		return decimal.Zero, errors.NotFound("Account not found: %s", accountID)
	}

	if uc.cache != nil {
		uc.cache.SetBalance(ctx, accountID, a.Balance)
	}
	return a.Balance, nil
}
