package account_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountApp "github.com/dmelo/finledger/internal/application/account"
	"github.com/dmelo/finledger/internal/domain/errors"
	"github.com/dmelo/finledger/internal/domain/ledger"
	"github.com/dmelo/finledger/internal/testutil"
)

// seedHistory appends n entries and returns their committed event times,
// oldest first.
func seedHistory(t *testing.T, store *testutil.MemStore, accountID uuid.UUID, n int) []time.Time {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		e, err := ledger.NewEntry(accountID, i%2 == 0, decimal.NewFromInt(int64(i+1)), fmt.Sprintf("entry %d", i+1))
		require.NoError(t, err)
		require.NoError(t, store.Append(ctx, e))
	}
	committed := store.Entries(accountID)
	require.Len(t, committed, n)
	times := make([]time.Time, n)
	for i, e := range committed {
		times[i] = e.EventTime
	}
	return times
}

func TestGetTransactions_NewestFirst(t *testing.T) {
	store := testutil.NewMemStore()
	a := testutil.SeedActiveAccount(t, store, "0")
	times := seedHistory(t, store, a.ID, 5)

	uc := accountApp.NewGetTransactionsUseCase(store)

	entries, err := uc.Execute(context.Background(), a.ID, times[0], times[4].Add(time.Second), 0)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for i := 1; i < len(entries); i++ {
		assert.True(t, entries[i].EventTime.Before(entries[i-1].EventTime),
			"results must be strictly descending by event time")
	}
	assert.Equal(t, "5", entries[0].Amount.String(), "most recent entry first")
}

func TestGetTransactions_RangeBounds(t *testing.T) {
	store := testutil.NewMemStore()
	a := testutil.SeedActiveAccount(t, store, "0")
	times := seedHistory(t, store, a.ID, 5)

	uc := accountApp.NewGetTransactionsUseCase(store)

	// [times[1], times[3]): begin inclusive, end exclusive.
	entries, err := uc.Execute(context.Background(), a.ID, times[1], times[3], 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].EventTime.Equal(times[2]))
	assert.True(t, entries[1].EventTime.Equal(times[1]), "entry at the begin bound is included")
}

func TestGetTransactions_Limit(t *testing.T) {
	store := testutil.NewMemStore()
	a := testutil.SeedActiveAccount(t, store, "0")
	times := seedHistory(t, store, a.ID, 5)

	uc := accountApp.NewGetTransactionsUseCase(store)

	entries, err := uc.Execute(context.Background(), a.ID, times[0], times[4].Add(time.Second), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "5", entries[0].Amount.String())
	assert.Equal(t, "4", entries[1].Amount.String(), "limit keeps the most recent entries")

	// A limit above the result size returns everything.
	entries, err = uc.Execute(context.Background(), a.ID, times[0], times[4].Add(time.Second), 50)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestGetTransactions_InvalidRange(t *testing.T) {
	store := testutil.NewMemStore()
	a := testutil.SeedActiveAccount(t, store, "0")
	now := time.Now()

	_, err := accountApp.NewGetTransactionsUseCase(store).Execute(
		context.Background(), a.ID, now.Add(time.Hour), now, 0)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "Invalid timestamp range")
}

func TestGetTransactions_EmptyWindow(t *testing.T) {
	store := testutil.NewMemStore()
	a := testutil.SeedActiveAccount(t, store, "0")
	times := seedHistory(t, store, a.ID, 3)

	entries, err := accountApp.NewGetTransactionsUseCase(store).Execute(
		context.Background(), a.ID, times[0], times[0], 0)
	require.NoError(t, err, "equal bounds form a valid, empty window")
	assert.Empty(t, entries)
}

func TestGetTransactions_OtherAccountInvisible(t *testing.T) {
	store := testutil.NewMemStore()
	a := testutil.SeedActiveAccount(t, store, "0")
	b := testutil.SeedActiveAccount(t, store, "0")
	times := seedHistory(t, store, a.ID, 3)

	entries, err := accountApp.NewGetTransactionsUseCase(store).Execute(
		context.Background(), b.ID, times[0], times[2].Add(time.Second), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
