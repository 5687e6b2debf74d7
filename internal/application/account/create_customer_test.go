package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountApp "github.com/dmelo/finledger/internal/application/account"
	"github.com/dmelo/finledger/internal/domain/errors"
	"github.com/dmelo/finledger/internal/testutil"
)

func TestCreateCustomer_Success(t *testing.T) {
	store := testutil.NewMemStore()
	uc := accountApp.NewCreateCustomerUseCase(store)

	c, err := uc.Execute(context.Background(), accountApp.CreateCustomerRequest{
		Name:    "Ana Souza",
		Address: "12 Rua Verde",
	})
	require.NoError(t, err)

	persisted := store.Customer(c.ID)
	require.NotNil(t, persisted)
	assert.Equal(t, "Ana Souza", persisted.Name)
	assert.Equal(t, "12 Rua Verde", persisted.Address)
}

func TestCreateCustomer_MissingName(t *testing.T) {
	store := testutil.NewMemStore()
	uc := accountApp.NewCreateCustomerUseCase(store)

	_, err := uc.Execute(context.Background(), accountApp.CreateCustomerRequest{Address: "12 Rua Verde"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}
