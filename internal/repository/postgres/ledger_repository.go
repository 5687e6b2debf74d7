package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmelo/finledger/internal/domain/ledger"
)

// LedgerRepository implements ledger.Repository using PostgreSQL.
//
// Expected relation:
//
//	entries (account_id uuid REFERENCES accounts,
//	         event_time timestamptz DEFAULT clock_timestamp(),
//	         is_credit boolean, amount numeric CHECK (amount > 0),
//	         description text DEFAULT '',
//	         PRIMARY KEY (account_id, event_time))
//
// The composite primary key keeps an account's history physically clustered
// for the descending range scan, and event_time is assigned by the store at
// commit so replayed transaction bodies cannot produce duplicate rows.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

func (r *LedgerRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

// Append stages one immutable entry; event_time is filled by the store.
func (r *LedgerRepository) Append(ctx context.Context, e *ledger.Entry) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO entries (account_id, is_credit, amount, description) VALUES ($1, $2, $3, $4)`,
		e.AccountID, e.IsCredit, numericFromDecimal(e.Amount), e.Description,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// Query returns entries with begin <= event_time < end, newest first,
// truncated to limit when limit > 0.
func (r *LedgerRepository) Query(ctx context.Context, accountID uuid.UUID, begin, end time.Time, limit int) ([]*ledger.Entry, error) {
	query := `SELECT account_id, event_time, is_credit, amount, description
		 FROM entries
		 WHERE account_id = $1 AND event_time >= $2 AND event_time < $3
		 ORDER BY event_time DESC`
	args := []any{accountID, begin, end}
	if limit > 0 {
		query += ` LIMIT $4`
		args = append(args, limit)
	}

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry
	for rows.Next() {
		e := &ledger.Entry{}
		var amountStr string
		if err := rows.Scan(&e.AccountID, &e.EventTime, &e.IsCredit, &amountStr, &e.Description); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		amount, err := decimalFromNumeric(amountStr)
		if err != nil {
			return nil, fmt.Errorf("parse entry amount: %w", err)
		}
		e.Amount = amount
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
