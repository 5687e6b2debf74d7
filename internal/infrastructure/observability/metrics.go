package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all ledger metrics
type Metrics struct {
	// OperationsTotal counts ledger operations by name and terminal outcome
	// (committed, rejected, aborted, error).
	OperationsTotal *prometheus.CounterVec

	// TxRetries counts serialization-conflict replays per operation.
	TxRetries *prometheus.CounterVec

	// TxDuration observes end-to-end operation latency including replays.
	TxDuration *prometheus.HistogramVec

	// CacheRequests counts bounded-staleness cache lookups by result
	// (hit, miss, error, open).
	CacheRequests *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics against the given registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of ledger operations by name and outcome",
			},
			[]string{"operation", "outcome"},
		),
		TxRetries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tx_retries_total",
				Help:      "Total number of transaction replays after write-write conflicts",
			},
			[]string{"operation"},
		),
		TxDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tx_duration_seconds",
				Help:      "Ledger operation duration in seconds, replays included",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"operation"},
		),
		CacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "Total number of bounded-staleness cache lookups by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.OperationsTotal, m.TxRetries, m.TxDuration, m.CacheRequests)
	return m
}
