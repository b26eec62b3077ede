// Package memory is a process-local implementation of the repository ports.
// It backs STORAGE_BACKEND=memory and the service tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
)

// Store keeps every entity in maps guarded by one RWMutex. Account mutations additionally
// take a per-account lock through LedgerTx.LockAccount.
type Store struct {
	mu sync.RWMutex

	accountTypes map[int64]domain.AccountType
	clients      map[int64]domain.Client
	accounts     map[int64]domain.Account
	transactions []domain.Transaction
	periods      map[int64]domain.InterestPeriod

	accountLocks map[int64]chan struct{}

	nextAccountTypeID int64
	nextClientID      int64
	nextAccountID     int64
	nextTransactionID int64
	nextPeriodID      int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accountTypes: make(map[int64]domain.AccountType),
		clients:      make(map[int64]domain.Client),
		accounts:     make(map[int64]domain.Account),
		periods:      make(map[int64]domain.InterestPeriod),
		accountLocks: make(map[int64]chan struct{}),
	}
}

// NewRepositoryProvider wires a single store behind every repository port.
func NewRepositoryProvider(store *Store) *repositories.RepositoryProvider {
	return &repositories.RepositoryProvider{
		AccountTypeRepo:    store,
		ClientRepo:         store,
		AccountRepo:        store,
		TransactionRepo:    store,
		InterestPeriodRepo: store,
		StatisticsRepo:     store,
	}
}

var (
	_ repositories.AccountTypeRepositoryFacade = (*Store)(nil)
	_ repositories.ClientRepositoryFacade      = (*Store)(nil)
	_ repositories.AccountRepositoryFacade     = (*Store)(nil)
	_ repositories.TransactionReader           = (*Store)(nil)
	_ repositories.InterestPeriodReader        = (*Store)(nil)
	_ repositories.StatisticsReader            = (*Store)(nil)
)

// acquire blocks until the account's lock is free or ctx is done.
func (s *Store) acquire(ctx context.Context, accountID int64) error {
	s.mu.Lock()
	lock, ok := s.accountLocks[accountID]
	if !ok {
		lock = make(chan struct{}, 1)
		s.accountLocks[accountID] = lock
	}
	s.mu.Unlock()

	select {
	case lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for lock on account %d: %w", accountID, ctx.Err())
	}
}

func (s *Store) release(accountID int64) {
	s.mu.RLock()
	lock := s.accountLocks[accountID]
	s.mu.RUnlock()
	<-lock
}

// WithinTx runs fn against a staging area and applies its writes in one step when fn succeeds.
// Account locks taken by fn are released when WithinTx returns, including on panic.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repositories.LedgerTx) error) error {
	tx := newLedgerTx(s)
	defer tx.releaseLocks()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.commit()
}
