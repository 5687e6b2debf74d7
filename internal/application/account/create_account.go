package account

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dmelo/finledger/internal/domain/account"
	"github.com/dmelo/finledger/internal/domain/errors"
)

// CreateAccountRequest holds the input for opening an account. Balance
// travels as a string so the caller's numeric representation is validated
// here, not truncated upstream.
type CreateAccountRequest struct {
	Type    account.AccountType
	Status  account.AccountStatus
	Balance string
}

// CreateAccountUseCase orchestrates account creation.
type CreateAccountUseCase struct {
	accounts account.Repository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase.
func NewCreateAccountUseCase(accounts account.Repository) *CreateAccountUseCase {
	return &CreateAccountUseCase{accounts: accounts}
}

// Execute opens a new account with the given status and opening balance.
// The creation timestamp is assigned by the store at commit.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, req CreateAccountRequest) (*account.Account, error) {
	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		return nil, errors.InvalidArgument("Invalid balance - %s. Expected a NUMERIC value", req.Balance)
	}
	a, err := account.NewAccount(req.Type, req.Status, balance)
	if err != nil {
		return nil, err
	}
	if err := uc.accounts.CreateAccount(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
