package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dmelo/finledger/internal/domain/account"
)

// AccountRepository implements account.Repository using PostgreSQL.
//
// Expected relations:
//
//	customers      (id uuid PK, name text, address text)
//	accounts       (id uuid PK, account_type text, status text,
//	                balance numeric CHECK (balance >= 0),
//	                created_at timestamptz DEFAULT clock_timestamp())
//	customer_roles (id uuid PK, customer_id uuid REFERENCES customers,
//	                account_id uuid REFERENCES accounts, role_name text)
//
// created_at has a DB default; the engine never writes it.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

// CreateCustomer inserts a new customer row.
func (r *AccountRepository) CreateCustomer(ctx context.Context, c *account.Customer) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO customers (id, name, address) VALUES ($1, $2, $3)`,
		c.ID, c.Name, c.Address,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// CreateAccount inserts a new account row; created_at is filled by the store.
func (r *AccountRepository) CreateAccount(ctx context.Context, a *account.Account) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO accounts (id, account_type, status, balance) VALUES ($1, $2, $3, $4)`,
		a.ID, string(a.Type), string(a.Status), numericFromDecimal(a.Balance),
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// CreateRole inserts a new customer-role row.
func (r *AccountRepository) CreateRole(ctx context.Context, role *account.CustomerRole) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO customer_roles (id, customer_id, account_id, role_name) VALUES ($1, $2, $3, $4)`,
		role.ID, role.CustomerID, role.AccountID, role.Name,
	)
	if err != nil {
		return fmt.Errorf("insert customer role: %w", err)
	}
	return nil
}

// Get reads all requested accounts in one statement. Missing ids are absent
// from the result map.
func (r *AccountRepository) Get(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*account.Account, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT id, account_type, status, balance, created_at FROM accounts WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[uuid.UUID]*account.Account, len(ids))
	for rows.Next() {
		a := &account.Account{}
		var (
			accountType string
			status      string
			balanceStr  string
		)
		if err := rows.Scan(&a.ID, &accountType, &status, &balanceStr, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		balance, err := decimalFromNumeric(balanceStr)
		if err != nil {
			return nil, fmt.Errorf("parse balance: %w", err)
		}
		a.Type = account.AccountType(accountType)
		a.Status = account.AccountStatus(status)
		a.Balance = balance
		accounts[a.ID] = a
	}
	return accounts, rows.Err()
}

// UpdateBalance overwrites one account's balance.
func (r *AccountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE accounts SET balance = $1 WHERE id = $2`,
		numericFromDecimal(balance), id,
	)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update balance: no account %s", id)
	}
	return nil
}
