package transfer

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmelo/finledger/internal/domain/account"
	"github.com/dmelo/finledger/internal/domain/errors"
	"github.com/dmelo/finledger/internal/domain/ledger"
)

// MoveBalanceResult holds both committed balances after a transfer.
type MoveBalanceResult struct {
	FromBalance decimal.Decimal
	ToBalance   decimal.Decimal
}

// MoveBalanceUseCase atomically moves an amount between two accounts: two
// balance overwrites plus two history entries, committed as one unit. The
// sum of the two balances is unchanged by a successful move.
type MoveBalanceUseCase struct {
	accounts      account.Repository
	entries       ledger.Repository
	txManager     TransactionManager
	requireActive bool
}

// NewMoveBalanceUseCase creates a new MoveBalanceUseCase.
func NewMoveBalanceUseCase(
	accounts account.Repository,
	entries ledger.Repository,
	txManager TransactionManager,
	cfg Config,
) *MoveBalanceUseCase {
	return &MoveBalanceUseCase{
		accounts:      accounts,
		entries:       entries,
		txManager:     txManager,
		requireActive: cfg.RequireActiveAccounts,
	}
}

// Execute transfers rawAmount from one account to the other and returns both
// new balances. The transaction body only reads, validates, and stages
// writes, so the manager may replay it on conflict.
func (uc *MoveBalanceUseCase) Execute(ctx context.Context, fromID, toID uuid.UUID, rawAmount string) (*MoveBalanceResult, error) {
	if fromID == toID {
		return nil, errors.InvalidArgument(`"to" and "from" account IDs must be different`)
	}
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return nil, err
	}

	var result MoveBalanceResult
	err = uc.txManager.WithTransaction(ctx, "move_balance", func(ctx context.Context) error {
		accounts, err := uc.accounts.Get(ctx, fromID, toID)
		if err != nil {
			return err
		}
		if err := uc.checkTransferable(accounts, fromID, toID); err != nil {
			return err
		}

		from := accounts[fromID]
		to := accounts[toID]
		newFrom := from.Balance.Sub(amount)
		newTo := to.Balance.Add(amount)
		if newFrom.IsNegative() {
			return errors.InvalidArgument(
				"Account balance cannot be negative. original account balance: %s, amount to be removed: %s",
				from.Balance, amount)
		}

		if err := uc.accounts.UpdateBalance(ctx, fromID, newFrom); err != nil {
			return err
		}
		if err := uc.accounts.UpdateBalance(ctx, toID, newTo); err != nil {
			return err
		}
		// The source records a credit, the destination a debit, both for the
		// same amount.
		if err := appendEntry(ctx, uc.entries, fromID, true, amount); err != nil {
			return err
		}
		if err := appendEntry(ctx, uc.entries, toID, false, amount); err != nil {
			return err
		}

		result = MoveBalanceResult{FromBalance: newFrom, ToBalance: newTo}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// checkTransferable verifies existence, and eligibility in strict mode, for
// both sides. The source account is reported first when both fail.
func (uc *MoveBalanceUseCase) checkTransferable(accounts map[uuid.UUID]*account.Account, ids ...uuid.UUID) error {
	for _, id := range ids {
		a, ok := accounts[id]
		if !ok {
			return errors.InvalidArgument("Account not found: %s", id)
		}
		if uc.requireActive && !a.Eligible() {
			return errors.InvalidArgument("Non-active accounts are not eligible for transfers: %s", id)
		}
	}
	return nil
}

func appendEntry(ctx context.Context, entries ledger.Repository, accountID uuid.UUID, isCredit bool, amount decimal.Decimal) error {
	e, err := ledger.NewEntry(accountID, isCredit, amount, "")
	if err != nil {
		return err
	}
	return entries.Append(ctx, e)
}
