package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/dmelo/finledger/internal/infrastructure/observability"
)

// BalanceCache is the bounded-staleness read path for balance lookups.
//
// A cached value may lag the store by at most the configured TTL. The cache
// sits behind a circuit breaker so a struggling Redis degrades every lookup
// to a strong read instead of adding latency; a miss and an open breaker
// look the same to the caller.
type BalanceCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker[string]
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewBalanceCache creates a new BalanceCache with ttl as the staleness bound.
func NewBalanceCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger, metrics *observability.Metrics) *BalanceCache {
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "balance-cache",
		MaxRequests: 10,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
		// A key that is simply absent is a healthy answer, not a failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
	})
	return &BalanceCache{
		client:  client,
		ttl:     ttl,
		breaker: breaker,
		logger:  logger.With().Str("component", "balance-cache").Logger(),
		metrics: metrics,
	}
}

// GetBalance returns the cached balance and whether it was present.
func (c *BalanceCache) GetBalance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, bool) {
	raw, err := c.breaker.Execute(func() (string, error) {
		return c.client.Get(ctx, balanceKey(accountID)).Result()
	})
	switch {
	case errors.Is(err, redis.Nil):
		c.count("miss")
		return decimal.Zero, false
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.count("open")
		return decimal.Zero, false
	case err != nil:
		c.count("error")
		c.logger.Debug().Err(err).Msg("cache read failed, falling back to strong read")
		return decimal.Zero, false
	}

	balance, err := decimal.NewFromString(raw)
	if err != nil {
		// Corrupt value: drop it and fall back.
		c.count("error")
		c.client.Del(ctx, balanceKey(accountID))
		return decimal.Zero, false
	}
	c.count("hit")
	return balance, true
}

// SetBalance stores a balance with the staleness bound as TTL. Failures are
// logged and otherwise ignored; the cache is best effort.
func (c *BalanceCache) SetBalance(ctx context.Context, accountID uuid.UUID, balance decimal.Decimal) {
	_, err := c.breaker.Execute(func() (string, error) {
		return "", c.client.Set(ctx, balanceKey(accountID), balance.String(), c.ttl).Err()
	})
	if err != nil {
		c.logger.Debug().Err(err).Msg("cache write failed")
	}
}

func (c *BalanceCache) count(result string) {
	if c.metrics != nil {
		c.metrics.CacheRequests.WithLabelValues(result).Inc()
	}
}

func balanceKey(accountID uuid.UUID) string {
	return "balance:" + accountID.String()
}
