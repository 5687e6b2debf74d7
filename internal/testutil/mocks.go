package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmelo/finledger/internal/domain/account"
	"github.com/dmelo/finledger/internal/domain/ledger"
)

// MemStore is an in-memory stand-in for the transactional store. It
// implements account.Repository, ledger.Repository, and the transfer
// engine's TransactionManager port.
//
// WithTransaction hands the body a snapshot of the whole store and commits
// the snapshot atomically when the body succeeds, assigning commit
// timestamps to staged rows exactly like the real store. ForceConflicts
// makes the next n successful attempts get discarded and replayed, which is
// how the replay-idempotency tests drive the engine.
type MemStore struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*account.Customer
	accounts  map[uuid.UUID]*account.Account
	roles     map[uuid.UUID]*account.CustomerRole
	entries   map[uuid.UUID][]*ledger.Entry
	clock     time.Time
	conflicts int

	// Attempts counts transaction bodies started, replays included.
	Attempts int

	// GetErr, when set, is returned by every account read.
	GetErr error
}

type txCtxKey struct{}

// txState is one attempt's private copy of the store.
type txState struct {
	customers map[uuid.UUID]*account.Customer
	accounts  map[uuid.UUID]*account.Account
	roles     map[uuid.UUID]*account.CustomerRole
	appended  []*ledger.Entry
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		customers: make(map[uuid.UUID]*account.Customer),
		accounts:  make(map[uuid.UUID]*account.Account),
		roles:     make(map[uuid.UUID]*account.CustomerRole),
		entries:   make(map[uuid.UUID][]*ledger.Entry),
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// ForceConflicts discards the next n otherwise-successful attempts, forcing
// the transaction manager's replay path.
func (s *MemStore) ForceConflicts(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflicts = n
}

// WithTransaction implements the transfer engine's TransactionManager port.
// The store lock is held for the whole attempt loop, so concurrent callers
// observe the same serial order a conflict-replaying store converges on. The
// body must route every read and write through the ctx-carried snapshot.
func (s *MemStore) WithTransaction(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		tx := s.snapshot()
		s.Attempts++
		if err := fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
			return err
		}
		if s.conflicts > 0 {
			s.conflicts--
			continue
		}
		s.commit(tx)
		return nil
	}
}

func (s *MemStore) snapshot() *txState {
	tx := &txState{
		customers: make(map[uuid.UUID]*account.Customer, len(s.customers)),
		accounts:  make(map[uuid.UUID]*account.Account, len(s.accounts)),
		roles:     make(map[uuid.UUID]*account.CustomerRole, len(s.roles)),
	}
	for id, c := range s.customers {
		copied := *c
		tx.customers[id] = &copied
	}
	for id, a := range s.accounts {
		copied := *a
		tx.accounts[id] = &copied
	}
	for id, r := range s.roles {
		copied := *r
		tx.roles[id] = &copied
	}
	return tx
}

// commit swaps the attempt's state in and stamps staged rows with commit
// timestamps, strictly increasing per store.
func (s *MemStore) commit(tx *txState) {
	for _, a := range tx.accounts {
		if a.CreatedAt.IsZero() {
			s.clock = s.clock.Add(time.Microsecond)
			a.CreatedAt = s.clock
		}
	}
	s.customers = tx.customers
	s.accounts = tx.accounts
	s.roles = tx.roles
	for _, e := range tx.appended {
		s.clock = s.clock.Add(time.Microsecond)
		e.EventTime = s.clock
		s.entries[e.AccountID] = append(s.entries[e.AccountID], e)
	}
}

func txFromCtx(ctx context.Context) *txState {
	tx, _ := ctx.Value(txCtxKey{}).(*txState)
	return tx
}

// --- account.Repository ---

func (s *MemStore) CreateCustomer(ctx context.Context, c *account.Customer) error {
	if tx := txFromCtx(ctx); tx != nil {
		tx.customers[c.ID] = c
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = c
	return nil
}

func (s *MemStore) CreateAccount(ctx context.Context, a *account.Account) error {
	if tx := txFromCtx(ctx); tx != nil {
		tx.accounts[a.ID] = a
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Add(time.Microsecond)
	a.CreatedAt = s.clock
	s.accounts[a.ID] = a
	return nil
}

func (s *MemStore) CreateRole(ctx context.Context, r *account.CustomerRole) error {
	if tx := txFromCtx(ctx); tx != nil {
		tx.roles[r.ID] = r
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[r.ID] = r
	return nil
}

func (s *MemStore) Get(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*account.Account, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	result := make(map[uuid.UUID]*account.Account, len(ids))
	if tx := txFromCtx(ctx); tx != nil {
		for _, id := range ids {
			if a, ok := tx.accounts[id]; ok {
				copied := *a
				result[id] = &copied
			}
		}
		return result, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if a, ok := s.accounts[id]; ok {
			copied := *a
			result[id] = &copied
		}
	}
	return result, nil
}

func (s *MemStore) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	if tx := txFromCtx(ctx); tx != nil {
		a, ok := tx.accounts[id]
		if !ok {
			return errMissingAccount(id)
		}
		a.Balance = balance
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return errMissingAccount(id)
	}
	a.Balance = balance
	return nil
}

// --- ledger.Repository ---

func (s *MemStore) Append(ctx context.Context, e *ledger.Entry) error {
	if tx := txFromCtx(ctx); tx != nil {
		tx.appended = append(tx.appended, e)
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Add(time.Microsecond)
	e.EventTime = s.clock
	s.entries[e.AccountID] = append(s.entries[e.AccountID], e)
	return nil
}

func (s *MemStore) Query(_ context.Context, accountID uuid.UUID, begin, end time.Time, limit int) ([]*ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*ledger.Entry
	for _, e := range s.entries[accountID] {
		if !e.EventTime.Before(begin) && e.EventTime.Before(end) {
			copied := *e
			matched = append(matched, &copied)
		}
	}
	// Stored ascending by commit time; serve newest first.
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// --- assertion helpers ---

// Balance returns the committed balance of an account.
func (s *MemStore) Balance(id uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[id]; ok {
		return a.Balance
	}
	return decimal.Zero
}

// Entries returns the committed history of an account, oldest first.
func (s *MemStore) Entries(id uuid.UUID) []*ledger.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*ledger.Entry, 0, len(s.entries[id]))
	for _, e := range s.entries[id] {
		copied := *e
		out = append(out, &copied)
	}
	return out
}

// Customer returns the committed customer row, or nil.
func (s *MemStore) Customer(id uuid.UUID) *account.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.customers[id]; ok {
		copied := *c
		return &copied
	}
	return nil
}

// Role returns the committed role row, or nil.
func (s *MemStore) Role(id uuid.UUID) *account.CustomerRole {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.roles[id]; ok {
		copied := *r
		return &copied
	}
	return nil
}

func errMissingAccount(id uuid.UUID) error {
	return &missingAccountError{id: id}
}

type missingAccountError struct {
	id uuid.UUID
}

func (e *missingAccountError) Error() string {
	return "no account " + e.id.String()
}
