package repositories

import (
	"context"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

// TransactionReader defines read operations over the journal. Entries are never updated.
type TransactionReader interface {
	// FindTransactionsByAccount returns a page of entries, newest first, and the token for the next page.
	FindTransactionsByAccount(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// InterestPeriodReader defines read operations over interest periods.
type InterestPeriodReader interface {
	// FindInterestPeriodsByAccount lists every period of an account, newest first.
	FindInterestPeriodsByAccount(ctx context.Context, accountID int64) ([]domain.InterestPeriod, error)
}

// StatisticsReader aggregates figures over the whole book.
type StatisticsReader interface {
	// GetStatistics fills counts and total balance. AverageBalance is left to the caller.
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}
