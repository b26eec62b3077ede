package repositories

import (
	"context"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

// AccountTypeReader defines read operations for the account-type catalog
type AccountTypeReader interface {
	FindAccountTypeByID(ctx context.Context, accountTypeID int64) (*domain.AccountType, error)
	FindAccountTypeByCode(ctx context.Context, code string) (*domain.AccountType, error)
	ListAccountTypes(ctx context.Context, activeOnly bool) ([]domain.AccountType, error)
}

// AccountTypeWriter defines write operations for the account-type catalog
type AccountTypeWriter interface {
	// SaveAccountType inserts the type unless one with the same code exists. It assigns AccountTypeID.
	SaveAccountType(ctx context.Context, accountType *domain.AccountType) error
}

// AccountTypeRepositoryFacade combines all account-type repository interfaces
type AccountTypeRepositoryFacade interface {
	AccountTypeReader
	AccountTypeWriter
}
