package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

// LedgerTx is the set of operations available inside one atomic unit of work.
// LockAccount serializes callers on the same account until the unit of work ends.
type LedgerTx interface {
	// LockAccount loads an account and holds its lock for the rest of the unit of work.
	LockAccount(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountType reads the policy of an account type.
	FindAccountType(ctx context.Context, accountTypeID int64) (*domain.AccountType, error)

	// InsertAccount persists a new account and assigns its AccountID.
	InsertAccount(ctx context.Context, account *domain.Account) error

	// UpdateAccountBalance writes balance, available balance, historical minimum and operation dates.
	UpdateAccountBalance(ctx context.Context, account domain.Account) error

	// InsertTransaction appends a journal entry and assigns its TransactionID.
	InsertTransaction(ctx context.Context, txn *domain.Transaction) error

	// InsertInterestPeriod persists a calculated period and assigns its InterestPeriodID.
	InsertInterestPeriod(ctx context.Context, period *domain.InterestPeriod) error

	// FindInterestPeriodsByStatus lists an account's periods in the given status, oldest first.
	FindInterestPeriodsByStatus(ctx context.Context, accountID int64, status domain.InterestStatus) ([]domain.InterestPeriod, error)

	// MarkInterestPeriodsCapitalized flips the given periods to CAPITALIZED.
	MarkInterestPeriodsCapitalized(ctx context.Context, periodIDs []int64, capitalizedOn time.Time) error
}

// TransactionManager runs fn inside a single atomic unit of work.
// Every write made through the LedgerTx is committed together or not at all.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}
