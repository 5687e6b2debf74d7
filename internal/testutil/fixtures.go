package testutil

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dmelo/finledger/internal/domain/account"
)

// SeedAccount commits an account with the given status and balance and
// returns it.
func SeedAccount(t *testing.T, store *MemStore, status account.AccountStatus, balance string) *account.Account {
	t.Helper()
	b, err := decimal.NewFromString(balance)
	if err != nil {
		t.Fatalf("bad fixture balance %q: %v", balance, err)
	}
	a, err := account.NewAccount(account.TypeChecking, status, b)
	if err != nil {
		t.Fatalf("fixture account: %v", err)
	}
	if err := store.CreateAccount(context.Background(), a); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return a
}

// SeedActiveAccount commits an active account with the given balance.
func SeedActiveAccount(t *testing.T, store *MemStore, balance string) *account.Account {
	t.Helper()
	return SeedAccount(t, store, account.StatusActive, balance)
}
