package services_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/savings_ledger_app/internal/repositories/memory"
)

// seqRefs hands out predictable identifiers.
type seqRefs struct {
	n atomic.Int64
}

func (r *seqRefs) ClientNumber() string         { return fmt.Sprintf("CLI%04d", r.n.Add(1)) }
func (r *seqRefs) AccountNumber() string        { return fmt.Sprintf("EPA%04d", r.n.Add(1)) }
func (r *seqRefs) TransactionReference() string { return fmt.Sprintf("OPE%04d", r.n.Add(1)) }

// testClock is a settable clock shared by the services under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(y int, m time.Month, d int) *testClock {
	return &testClock{now: time.Date(y, m, d, 9, 30, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(y int, m time.Month, d int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// faultyStore injects failures into the unit of work for selected accounts.
// cancelAt fires cancel while that account is being locked.
type faultyStore struct {
	*memory.Store
	failFor  int64
	panicFor int64
	cancelAt int64
	cancel   context.CancelFunc
}

func (f *faultyStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repositories.LedgerTx) error) error {
	return f.Store.WithinTx(ctx, func(ctx context.Context, tx repositories.LedgerTx) error {
		return fn(ctx, &faultyTx{LedgerTx: tx, store: f})
	})
}

type faultyTx struct {
	repositories.LedgerTx
	store *faultyStore
}

func (t *faultyTx) LockAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	switch accountID {
	case t.store.failFor:
		return nil, fmt.Errorf("storage unavailable for account %d", accountID)
	case t.store.panicFor:
		panic("corrupt row")
	case t.store.cancelAt:
		if t.store.cancel != nil {
			t.store.cancel()
		}
	}
	return t.LedgerTx.LockAccount(ctx, accountID)
}
