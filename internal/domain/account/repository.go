package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository is the storage port for customers, accounts, and roles.
//
// Every method runs against the transaction carried in ctx when one is
// present, so that a mutating use case stages all of its writes in a single
// atomic unit. Outside a transaction the methods execute as single-use reads
// or autocommit writes.
type Repository interface {
	// CreateCustomer inserts a new customer row.
	CreateCustomer(ctx context.Context, c *Customer) error

	// CreateAccount inserts a new account row. The store assigns CreatedAt
	// at commit time.
	CreateAccount(ctx context.Context, a *Account) error

	// CreateRole inserts a new customer-role row.
	CreateRole(ctx context.Context, r *CustomerRole) error

	// Get reads the requested accounts in one round trip. Absent ids are
	// simply missing from the returned map; the caller decides whether that
	// is an error.
	Get(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*Account, error)

	// UpdateBalance overwrites one account's balance.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}
