package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountApp "github.com/dmelo/finledger/internal/application/account"
	"github.com/dmelo/finledger/internal/domain/account"
	"github.com/dmelo/finledger/internal/domain/errors"
	"github.com/dmelo/finledger/internal/testutil"
)

func TestCreateAccount_Success(t *testing.T) {
	store := testutil.NewMemStore()
	uc := accountApp.NewCreateAccountUseCase(store)

	a, err := uc.Execute(context.Background(), accountApp.CreateAccountRequest{
		Type:    account.TypeChecking,
		Status:  account.StatusActive,
		Balance: "100.50",
	})
	require.NoError(t, err)
	assert.Equal(t, "100.5", a.Balance.String())
	assert.Equal(t, account.StatusActive, a.Status)
	assert.False(t, a.CreatedAt.IsZero(), "store assigns the creation timestamp at commit")
	assert.Equal(t, "100.5", store.Balance(a.ID).String())
}

func TestCreateAccount_ZeroBalance(t *testing.T) {
	store := testutil.NewMemStore()
	uc := accountApp.NewCreateAccountUseCase(store)

	a, err := uc.Execute(context.Background(), accountApp.CreateAccountRequest{
		Type:    account.TypeSaving,
		Status:  account.StatusFrozen,
		Balance: "0",
	})
	require.NoError(t, err)
	assert.True(t, a.Balance.IsZero())
	assert.Equal(t, account.StatusFrozen, a.Status)
}

func TestCreateAccount_InvalidBalance(t *testing.T) {
	store := testutil.NewMemStore()
	uc := accountApp.NewCreateAccountUseCase(store)

	_, err := uc.Execute(context.Background(), accountApp.CreateAccountRequest{
		Type:    account.TypeChecking,
		Status:  account.StatusActive,
		Balance: "lots",
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "Invalid balance - lots. Expected a NUMERIC value")
}

func TestCreateAccount_NegativeBalance(t *testing.T) {
	store := testutil.NewMemStore()
	uc := accountApp.NewCreateAccountUseCase(store)

	_, err := uc.Execute(context.Background(), accountApp.CreateAccountRequest{
		Type:    account.TypeChecking,
		Status:  account.StatusActive,
		Balance: "-5",
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "Account balance cannot be negative")
}

func TestCreateCustomerRole_Success(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemStore()
	customer, err := accountApp.NewCreateCustomerUseCase(store).Execute(ctx, accountApp.CreateCustomerRequest{
		Name: "Ana Souza", Address: "12 Rua Verde",
	})
	require.NoError(t, err)
	acct := testutil.SeedActiveAccount(t, store, "0")

	role, err := accountApp.NewCreateCustomerRoleUseCase(store).Execute(ctx, accountApp.CreateCustomerRoleRequest{
		CustomerID: customer.ID,
		AccountID:  acct.ID,
		Name:       "owner",
	})
	require.NoError(t, err)

	persisted := store.Role(role.ID)
	require.NotNil(t, persisted)
	assert.Equal(t, customer.ID, persisted.CustomerID)
	assert.Equal(t, acct.ID, persisted.AccountID)
	assert.Equal(t, "owner", persisted.Name)
}

func TestCreateCustomerRole_DanglingReferencesAccepted(t *testing.T) {
	// Referential integrity belongs to the store, not the engine.
	store := testutil.NewMemStore()
	uc := accountApp.NewCreateCustomerRoleUseCase(store)

	role, err := uc.Execute(context.Background(), accountApp.CreateCustomerRoleRequest{
		CustomerID: testutil.SeedActiveAccount(t, store, "0").ID, // not a real customer id
		AccountID:  testutil.SeedActiveAccount(t, store, "0").ID,
		Name:       "beneficiary",
	})
	require.NoError(t, err)
	assert.NotNil(t, store.Role(role.ID))
}
