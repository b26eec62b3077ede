package handlers_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/savings_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger_app/internal/dto"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) ListAccountsByClient(ctx context.Context, clientID int64) ([]domain.Account, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockLedgerService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockLedgerService) GetAvailableBalance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return txns, next, args.Error(2)
}

func (m *MockLedgerService) OpenAccount(ctx context.Context, req dto.OpenAccountRequest, administratorID *string) (*domain.Account, *domain.Transaction, error) {
	args := m.Called(ctx, req, administratorID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	txn, _ := args.Get(1).(*domain.Transaction)
	return args.Get(0).(*domain.Account), txn, args.Error(2)
}

func (m *MockLedgerService) Deposit(ctx context.Context, accountID int64, req dto.OperationRequest, administratorID *string) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, req, administratorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) Withdraw(ctx context.Context, accountID int64, req dto.OperationRequest, administratorID *string) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, req, administratorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ portssvc.AccountLedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock InterestService ---
type MockInterestService struct {
	mock.Mock
}

func (m *MockInterestService) CalculatePeriod(ctx context.Context, accountID int64, periodStart, periodEnd time.Time) (*domain.InterestPeriod, error) {
	args := m.Called(ctx, accountID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterestPeriod), args.Error(1)
}

func (m *MockInterestService) CapitalizePending(ctx context.Context, accountID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockInterestService) SweepAllAccounts(ctx context.Context) (*domain.SweepReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SweepReport), args.Error(1)
}

func (m *MockInterestService) ListInterestPeriods(ctx context.Context, accountID int64) ([]domain.InterestPeriod, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterestPeriod), args.Error(1)
}

func (m *MockInterestService) NextCapitalizationDate(ctx context.Context, accountID int64) (time.Time, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(time.Time), args.Error(1)
}

var _ portssvc.InterestEngineSvc = (*MockInterestService)(nil)

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) GetClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) GetClientByEmail(ctx context.Context, email string) (*domain.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientService) RegisterClient(ctx context.Context, req dto.RegisterClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) Authenticate(ctx context.Context, email string, password string) (*domain.Client, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

var _ portssvc.ClientSvcFacade = (*MockClientService)(nil)

// --- Mock CatalogService ---
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetAccountType(ctx context.Context, accountTypeID int64) (*domain.AccountType, error) {
	args := m.Called(ctx, accountTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountType), args.Error(1)
}

func (m *MockCatalogService) GetAccountTypeByCode(ctx context.Context, code string) (*domain.AccountType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountType), args.Error(1)
}

func (m *MockCatalogService) ListAccountTypes(ctx context.Context, activeOnly bool) ([]domain.AccountType, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountType), args.Error(1)
}

func (m *MockCatalogService) EnsureDefaultCatalog(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ portssvc.AccountTypeCatalogSvc = (*MockCatalogService)(nil)

// --- Mock StatisticsService ---
type MockStatisticsService struct {
	mock.Mock
}

func (m *MockStatisticsService) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

var _ portssvc.StatisticsSvc = (*MockStatisticsService)(nil)
