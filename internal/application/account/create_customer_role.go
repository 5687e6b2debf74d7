package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmelo/finledger/internal/domain/account"
)

// CreateCustomerRoleRequest holds the input for granting a customer a named
// relationship to an account.
type CreateCustomerRoleRequest struct {
	CustomerID uuid.UUID
	AccountID  uuid.UUID
	Name       string
}

// CreateCustomerRoleUseCase orchestrates role creation. It does not verify
// that the referenced customer and account exist; the store's referential
// constraints own that.
type CreateCustomerRoleUseCase struct {
	accounts account.Repository
}

// NewCreateCustomerRoleUseCase creates a new CreateCustomerRoleUseCase.
func NewCreateCustomerRoleUseCase(accounts account.Repository) *CreateCustomerRoleUseCase {
	return &CreateCustomerRoleUseCase{accounts: accounts}
}

// Execute creates the role and returns it with its generated id.
func (uc *CreateCustomerRoleUseCase) Execute(ctx context.Context, req CreateCustomerRoleRequest) (*account.CustomerRole, error) {
	r, err := account.NewCustomerRole(req.CustomerID, req.AccountID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := uc.accounts.CreateRole(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
