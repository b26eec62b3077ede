package services

import (
	"context"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/SscSPs/savings_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for savings accounts
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	ListAccountsByClient(ctx context.Context, clientID int64) ([]domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// GetAvailableBalance returns the balance that may currently be withdrawn against.
	GetAvailableBalance(ctx context.Context, accountID int64) (decimal.Decimal, error)

	// ListTransactions returns a page of journal entries, newest first.
	ListTransactions(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// AccountWriterSvc defines the money-moving operations. Each one journals exactly one entry
// atomically with the balance change, except an account opened with a zero deposit, which has none.
// administratorID is recorded on the entry when set.
type AccountWriterSvc interface {
	OpenAccount(ctx context.Context, req dto.OpenAccountRequest, administratorID *string) (*domain.Account, *domain.Transaction, error)
	Deposit(ctx context.Context, accountID int64, req dto.OperationRequest, administratorID *string) (*domain.Transaction, error)
	Withdraw(ctx context.Context, accountID int64, req dto.OperationRequest, administratorID *string) (*domain.Transaction, error)
}

// AccountLedgerSvcFacade combines all ledger service interfaces
type AccountLedgerSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
