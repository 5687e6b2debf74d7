package transfer

import "context"

// TransactionManager is the application-layer port for the external atomic
// executor. WithTransaction runs fn with a fresh, strongly consistent view
// each attempt and applies its writes atomically; on a write-write conflict
// the whole fn is re-executed from scratch, so fn must be a pure function of
// what it reads through ctx. name labels the operation for tracing and
// metrics.
type TransactionManager interface {
	WithTransaction(ctx context.Context, name string, fn func(ctx context.Context) error) error
}

// Config carries the engine's explicit knobs. It is a plain value so the
// caller, not the environment, decides the engine's behavior.
type Config struct {
	// RequireActiveAccounts enforces the strict transfer rule: both sides of
	// a balance move must have status active. When false only existence is
	// checked.
	RequireActiveAccounts bool
}
