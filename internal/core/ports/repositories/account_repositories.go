package repositories

import (
	"context"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for account data outside a unit of work
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its human-readable number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccountsByClient lists every account owned by a client.
	ListAccountsByClient(ctx context.Context, clientID int64) ([]domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by id.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ListAccountIDsByStatus returns the ids of all accounts in the given status, ascending.
	ListAccountIDsByStatus(ctx context.Context, status domain.AccountStatus) ([]int64, error)
}

// AccountRepositoryFacade combines account reads with the unit of work used for mutations
type AccountRepositoryFacade interface {
	AccountReader
	TransactionManager
}
