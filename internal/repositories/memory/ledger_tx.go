package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
)

type ledgerTx struct {
	store  *Store
	locked map[int64]bool

	accounts     map[int64]domain.Account
	newAccounts  map[int64]bool
	transactions []domain.Transaction
	periods      map[int64]domain.InterestPeriod
}

var _ repositories.LedgerTx = (*ledgerTx)(nil)

func newLedgerTx(s *Store) *ledgerTx {
	return &ledgerTx{
		store:       s,
		locked:      make(map[int64]bool),
		accounts:    make(map[int64]domain.Account),
		newAccounts: make(map[int64]bool),
		periods:     make(map[int64]domain.InterestPeriod),
	}
}

func (t *ledgerTx) releaseLocks() {
	for id := range t.locked {
		t.store.release(id)
	}
	t.locked = nil
}

func (t *ledgerTx) LockAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	if acc, ok := t.accounts[accountID]; ok {
		if !t.locked[accountID] && !t.newAccounts[accountID] {
			return nil, fmt.Errorf("account %d staged without lock", accountID)
		}
		return &acc, nil
	}

	t.store.mu.RLock()
	_, exists := t.store.accounts[accountID]
	t.store.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrNotFound
	}

	if !t.locked[accountID] {
		if err := t.store.acquire(ctx, accountID); err != nil {
			return nil, err
		}
		t.locked[accountID] = true
	}

	// Re-read after acquiring: the previous holder may have committed a new balance.
	t.store.mu.RLock()
	acc := t.store.accounts[accountID]
	t.store.mu.RUnlock()
	return &acc, nil
}

func (t *ledgerTx) FindAccountType(ctx context.Context, accountTypeID int64) (*domain.AccountType, error) {
	return t.store.FindAccountTypeByID(ctx, accountTypeID)
}

func (t *ledgerTx) InsertAccount(_ context.Context, account *domain.Account) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if _, ok := t.store.clients[account.ClientID]; !ok {
		return fmt.Errorf("%w: client %d", apperrors.ErrNotFound, account.ClientID)
	}
	if _, ok := t.store.accountTypes[account.AccountTypeID]; !ok {
		return fmt.Errorf("%w: account type %d", apperrors.ErrNotFound, account.AccountTypeID)
	}
	for _, existing := range t.store.accounts {
		if existing.AccountNumber == account.AccountNumber {
			return fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, account.AccountNumber)
		}
	}
	for _, staged := range t.accounts {
		if staged.AccountNumber == account.AccountNumber {
			return fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, account.AccountNumber)
		}
	}

	t.store.nextAccountID++
	account.AccountID = t.store.nextAccountID
	t.accounts[account.AccountID] = *account
	t.newAccounts[account.AccountID] = true
	return nil
}

func (t *ledgerTx) UpdateAccountBalance(_ context.Context, account domain.Account) error {
	if !t.locked[account.AccountID] && !t.newAccounts[account.AccountID] {
		return fmt.Errorf("account %d must be locked before it is updated", account.AccountID)
	}
	t.accounts[account.AccountID] = account
	return nil
}

func (t *ledgerTx) InsertTransaction(_ context.Context, txn *domain.Transaction) error {
	if !t.locked[txn.AccountID] && !t.newAccounts[txn.AccountID] {
		return fmt.Errorf("account %d must be locked before journaling", txn.AccountID)
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, existing := range t.store.transactions {
		if existing.Reference == txn.Reference {
			return fmt.Errorf("%w: transaction reference %s", apperrors.ErrDuplicate, txn.Reference)
		}
	}
	for _, staged := range t.transactions {
		if staged.Reference == txn.Reference {
			return fmt.Errorf("%w: transaction reference %s", apperrors.ErrDuplicate, txn.Reference)
		}
	}
	t.store.nextTransactionID++
	txn.TransactionID = t.store.nextTransactionID
	t.transactions = append(t.transactions, *txn)
	return nil
}

func (t *ledgerTx) InsertInterestPeriod(_ context.Context, period *domain.InterestPeriod) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if _, ok := t.store.accounts[period.AccountID]; !ok {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, period.AccountID)
	}
	t.store.nextPeriodID++
	period.InterestPeriodID = t.store.nextPeriodID
	t.periods[period.InterestPeriodID] = *period
	return nil
}

func (t *ledgerTx) FindInterestPeriodsByStatus(_ context.Context, accountID int64, status domain.InterestStatus) ([]domain.InterestPeriod, error) {
	merged := make(map[int64]domain.InterestPeriod)

	t.store.mu.RLock()
	for id, p := range t.store.periods {
		if p.AccountID == accountID {
			merged[id] = p
		}
	}
	t.store.mu.RUnlock()
	for id, p := range t.periods {
		if p.AccountID == accountID {
			merged[id] = p
		}
	}

	var out []domain.InterestPeriod
	for _, p := range merged {
		if p.Status == status {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InterestPeriodID < out[j].InterestPeriodID })
	return out, nil
}

func (t *ledgerTx) MarkInterestPeriodsCapitalized(_ context.Context, periodIDs []int64, capitalizedOn time.Time) error {
	for _, id := range periodIDs {
		p, ok := t.periods[id]
		if !ok {
			t.store.mu.RLock()
			p, ok = t.store.periods[id]
			t.store.mu.RUnlock()
		}
		if !ok {
			return fmt.Errorf("%w: interest period %d", apperrors.ErrNotFound, id)
		}
		on := capitalizedOn
		p.CapitalizedOn = &on
		p.Status = domain.InterestCapitalized
		t.periods[id] = p
	}
	return nil
}

func (t *ledgerTx) commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for id, acc := range t.accounts {
		t.store.accounts[id] = acc
	}
	t.store.transactions = append(t.store.transactions, t.transactions...)
	for id, p := range t.periods {
		t.store.periods[id] = p
	}
	return nil
}
