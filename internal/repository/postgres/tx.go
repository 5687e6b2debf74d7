package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	domainErrors "github.com/dmelo/finledger/internal/domain/errors"
	"github.com/dmelo/finledger/internal/infrastructure/observability"
	"github.com/dmelo/finledger/pkg/retry"
)

// ctxKey is an unexported type for context keys in this package.
type ctxKey int

const txKey ctxKey = iota

// DBTX is the common query interface satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TxManager runs ledger operations as serializable transactions with
// transparent replay on write-write conflict.
//
// Each attempt begins a fresh SERIALIZABLE transaction, carries it in
// context, and re-executes the whole body, so the body must stage all of its
// writes through the context-carried transaction and hold no other state.
// Conflicts (SQLSTATE 40001/40P01) are retried with exponential backoff;
// business errors are returned immediately.
type TxManager struct {
	pool     *pgxpool.Pool
	logger   zerolog.Logger
	metrics  *observability.Metrics
	tracer   trace.Tracer
	retryCfg retry.Config
}

// NewTxManager creates a new transaction manager.
func NewTxManager(pool *pgxpool.Pool, logger zerolog.Logger, metrics *observability.Metrics, retryCfg retry.Config) *TxManager {
	return &TxManager{
		pool:     pool,
		logger:   logger,
		metrics:  metrics,
		tracer:   otel.Tracer("finledger/postgres"),
		retryCfg: retryCfg,
	}
}

// WithTransaction executes fn atomically, replaying it on serialization
// conflicts until it commits or the retry budget runs out. When the budget
// is exhausted the error carries kind aborted so the caller knows a retry is
// safe.
func (m *TxManager) WithTransaction(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	start := time.Now()

	cfg := m.retryCfg
	cfg.OnRetry = func(n uint, err error) {
		if m.metrics != nil {
			m.metrics.TxRetries.WithLabelValues(name).Inc()
		}
		m.logger.Warn().
			Str("operation", name).
			Uint("attempt", n+1).
			Err(err).
			Msg("serialization conflict, replaying transaction")
	}

	err := retry.Do(ctx, cfg, func() error {
		return m.attempt(ctx, name, fn)
	}, isSerializationFailure)

	if m.metrics != nil {
		m.metrics.TxDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		m.metrics.OperationsTotal.WithLabelValues(name, outcomeLabel(err)).Inc()
	}

	if err != nil && isSerializationFailure(err) {
		return domainErrors.Aborted("transaction retry budget exhausted", err)
	}
	return err
}

// attempt runs one serializable transaction around fn.
func (m *TxManager) attempt(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := m.tracer.Start(ctx, "tx."+name)
	defer span.End()

	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("rollback failed (%v) after error: %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ConnFromCtx returns the transaction from context if present, otherwise the pool.
func ConnFromCtx(ctx context.Context, pool *pgxpool.Pool) DBTX {
	if tx, ok := ctx.Value(txKey).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// isSerializationFailure matches the two SQLSTATEs Postgres uses for
// write-write conflicts under serializable isolation.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "committed"
	case domainErrors.IsInvalidArgument(err):
		return "rejected"
	case isSerializationFailure(err):
		return "aborted"
	default:
		return "error"
	}
}
