package transfer

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmelo/finledger/internal/domain/account"
	"github.com/dmelo/finledger/internal/domain/errors"
	"github.com/dmelo/finledger/internal/domain/ledger"
)

// AdjustAccountUseCase applies a single-account balance mutation paired with
// exactly one history entry.
//
// Direction follows the observed ledger convention: a credit DECREASES the
// account balance (it reduces what the account holds against the ledger), a
// debit increases it.
type AdjustAccountUseCase struct {
	accounts  account.Repository
	entries   ledger.Repository
	txManager TransactionManager
}

// NewAdjustAccountUseCase creates a new AdjustAccountUseCase.
func NewAdjustAccountUseCase(
	accounts account.Repository,
	entries ledger.Repository,
	txManager TransactionManager,
) *AdjustAccountUseCase {
	return &AdjustAccountUseCase{accounts: accounts, entries: entries, txManager: txManager}
}

// Execute adjusts the account by rawAmount and returns the new balance.
func (uc *AdjustAccountUseCase) Execute(ctx context.Context, accountID uuid.UUID, rawAmount string, isCredit bool) (decimal.Decimal, error) {
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return decimal.Zero, err
	}

	var newBalance decimal.Decimal
	err = uc.txManager.WithTransaction(ctx, "adjust_account", func(ctx context.Context) error {
		accounts, err := uc.accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		a, ok := accounts[accountID]
		if !ok {
			return errors.InvalidArgument("Account not found: %s", accountID)
		}

		if isCredit {
			newBalance = a.Balance.Sub(amount)
		} else {
			newBalance = a.Balance.Add(amount)
		}
		if newBalance.IsNegative() {
			return errors.InvalidArgument(
				"Account balance cannot be negative. original account balance: %s, amount to be removed: %s",
				a.Balance, amount)
		}

		if err := uc.accounts.UpdateBalance(ctx, accountID, newBalance); err != nil {
			return err
		}
		return appendEntry(ctx, uc.entries, accountID, isCredit, amount)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}
