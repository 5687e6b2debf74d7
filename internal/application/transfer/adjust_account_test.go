package transfer_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmelo/finledger/internal/application/transfer"
	"github.com/dmelo/finledger/internal/domain/errors"
	"github.com/dmelo/finledger/internal/testutil"
)

func newAdjustUseCase(store *testutil.MemStore) *transfer.AdjustAccountUseCase {
	return transfer.NewAdjustAccountUseCase(store, store, store)
}

func TestAdjustAccount_CreditDecreasesBalance(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemStore()
	a := testutil.SeedActiveAccount(t, store, "60")

	newBalance, err := newAdjustUseCase(store).Execute(ctx, a.ID, "10", true)
	require.NoError(t, err)
	assert.Equal(t, "50", newBalance.String())
	assert.Equal(t, "50", store.Balance(a.ID).String())

	entries := store.Entries(a.ID)
	require.Len(t, entries, 1, "exactly one ledger row per adjustment")
	assert.True(t, entries[0].IsCredit)
	assert.Equal(t, "10", entries[0].Amount.String())
}

func TestAdjustAccount_DebitIncreasesBalance(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemStore()
	a := testutil.SeedActiveAccount(t, store, "60")

	newBalance, err := newAdjustUseCase(store).Execute(ctx, a.ID, "10", false)
	require.NoError(t, err)
	assert.Equal(t, "70", newBalance.String())

	entries := store.Entries(a.ID)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].IsCredit)
}

func TestAdjustAccount_CreditOverdraft(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemStore()
	a := testutil.SeedActiveAccount(t, store, "5")

	_, err := newAdjustUseCase(store).Execute(ctx, a.ID, "10", true)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "Account balance cannot be negative. original account balance: 5, amount to be removed: 10")

	assert.Equal(t, "5", store.Balance(a.ID).String())
	assert.Empty(t, store.Entries(a.ID))
}

func TestAdjustAccount_MissingAccount(t *testing.T) {
	store := testutil.NewMemStore()

	_, err := newAdjustUseCase(store).Execute(context.Background(), uuid.New(), "10", true)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "Account not found")
}

func TestAdjustAccount_InvalidAmounts(t *testing.T) {
	store := testutil.NewMemStore()
	a := testutil.SeedActiveAccount(t, store, "60")
	uc := newAdjustUseCase(store)

	for _, raw := range []string{"-10", "0", "abc", ""} {
		_, err := uc.Execute(context.Background(), a.ID, raw, true)
		require.Error(t, err, "amount %q", raw)
		assert.True(t, errors.IsInvalidArgument(err))
	}
	assert.Zero(t, store.Attempts, "validation happens before any transaction")
}

func TestAdjustAccount_ReplayIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemStore()
	a := testutil.SeedActiveAccount(t, store, "60")
	store.ForceConflicts(1)

	newBalance, err := newAdjustUseCase(store).Execute(ctx, a.ID, "10", true)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Attempts)
	assert.Equal(t, "50", newBalance.String())
	assert.Len(t, store.Entries(a.ID), 1, "no duplicate ledger rows from replays")
}
