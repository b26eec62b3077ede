package services

import (
	"context"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

// AccountTypeCatalogSvc is the read-only lookup of savings products.
type AccountTypeCatalogSvc interface {
	// GetAccountType retrieves a product by id.
	GetAccountType(ctx context.Context, accountTypeID int64) (*domain.AccountType, error)

	// GetAccountTypeByCode retrieves a product by its unique code.
	GetAccountTypeByCode(ctx context.Context, code string) (*domain.AccountType, error)

	// ListAccountTypes lists products, optionally only the active ones.
	ListAccountTypes(ctx context.Context, activeOnly bool) ([]domain.AccountType, error)

	// EnsureDefaultCatalog seeds the default products that are missing.
	EnsureDefaultCatalog(ctx context.Context) error
}
