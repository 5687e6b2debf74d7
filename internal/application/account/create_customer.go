package account

import (
	"context"

	"github.com/dmelo/finledger/internal/domain/account"
)

// CreateCustomerRequest holds the input for creating a customer.
type CreateCustomerRequest struct {
	Name    string
	Address string
}

// CreateCustomerUseCase orchestrates customer creation.
type CreateCustomerUseCase struct {
	accounts account.Repository
}

// NewCreateCustomerUseCase creates a new CreateCustomerUseCase.
func NewCreateCustomerUseCase(accounts account.Repository) *CreateCustomerUseCase {
	return &CreateCustomerUseCase{accounts: accounts}
}

// Execute creates a new customer and returns it with its generated id.
func (uc *CreateCustomerUseCase) Execute(ctx context.Context, req CreateCustomerRequest) (*account.Customer, error) {
	c, err := account.NewCustomer(req.Name, req.Address)
	if err != nil {
		return nil, err
	}
	if err := uc.accounts.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
