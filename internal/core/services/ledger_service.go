package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger_app/internal/dto"
	"github.com/SscSPs/savings_ledger_app/internal/utils"
	"github.com/SscSPs/savings_ledger_app/internal/utils/accounting"
)

const (
	defaultOpeningDescription    = "Initial deposit at account opening"
	defaultDepositDescription    = "Deposit"
	defaultWithdrawalDescription = "Withdrawal"

	defaultTransactionPageSize = 20
)

// ledgerService implements the AccountLedgerSvcFacade interface
type ledgerService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryFacade
	clientRepo      portsrepo.ClientReader
	transactionRepo portsrepo.TransactionReader
	refs            ReferenceGenerator
}

// LedgerOption is a functional option for configuring the ledger service
type LedgerOption func(*ledgerService)

// WithLedgerClock replaces the wall clock, mainly for tests around date boundaries.
func WithLedgerClock(clock func() time.Time) LedgerOption {
	return func(s *ledgerService) {
		s.clock = clock
	}
}

// WithReferenceGenerator replaces the account number and transaction reference generator.
func WithReferenceGenerator(refs ReferenceGenerator) LedgerOption {
	return func(s *ledgerService) {
		s.refs = refs
	}
}

// NewLedgerService creates the account ledger with the provided options
func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, clientRepo portsrepo.ClientReader, transactionRepo portsrepo.TransactionReader, options ...LedgerOption) portssvc.AccountLedgerSvcFacade {
	svc := &ledgerService{
		BaseService:     newBaseService(),
		accountRepo:     accountRepo,
		clientRepo:      clientRepo,
		transactionRepo: transactionRepo,
		refs:            utils.NewReferenceGenerator(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountLedgerSvcFacade = (*ledgerService)(nil)

// validateAmount rejects non-positive amounts and amounts finer than a cent.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrInvalidArgument, amount.String())
	}
	return validatePrecision(amount)
}

// validateOpeningDeposit accepts zero; the product's minimum initial deposit decides whether it is enough.
func validateOpeningDeposit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: initial deposit cannot be negative, got %s", apperrors.ErrInvalidArgument, amount.String())
	}
	return validatePrecision(amount)
}

func validatePrecision(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(domain.MoneyPlaces)) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", apperrors.ErrInvalidArgument, amount.String(), domain.MoneyPlaces)
	}
	return nil
}

func describe(description, fallback string) string {
	if d := strings.TrimSpace(description); d != "" {
		return d
	}
	return fallback
}

// OpenAccount journals the opening deposit unless it is zero, in which case the returned transaction is nil.
func (s *ledgerService) OpenAccount(ctx context.Context, req dto.OpenAccountRequest, administratorID *string) (*domain.Account, *domain.Transaction, error) {
	if err := validateOpeningDeposit(req.InitialDeposit); err != nil {
		return nil, nil, err
	}
	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: client %d", apperrors.ErrNotFound, req.ClientID)
		}
		s.LogError(ctx, err, "Failed to load client", slog.Int64("client_id", req.ClientID))
		return nil, nil, fmt.Errorf("failed to load client %d: %w", req.ClientID, err)
	}

	now := s.Now()
	today := domain.DateOf(now)
	createdBy := actor(administratorID, req.ClientID)

	var account domain.Account
	var opening *domain.Transaction
	err := s.accountRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		accountType, err := tx.FindAccountType(ctx, req.AccountTypeID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: account type %d", apperrors.ErrNotFound, req.AccountTypeID)
			}
			return fmt.Errorf("failed to load account type %d: %w", req.AccountTypeID, err)
		}
		if !accountType.IsActive {
			return fmt.Errorf("%w: account type %s is not open for subscription", apperrors.ErrPolicyViolation, accountType.Code)
		}
		if req.InitialDeposit.LessThan(accountType.MinInitialDeposit) {
			return fmt.Errorf("%w: initial deposit %s is below the minimum of %s for %s",
				apperrors.ErrPolicyViolation, dto.Money(req.InitialDeposit), dto.Money(accountType.MinInitialDeposit), accountType.Code)
		}
		if req.InitialDeposit.GreaterThan(accountType.DepositCeiling) {
			return fmt.Errorf("%w: initial deposit %s exceeds the ceiling of %s for %s",
				apperrors.ErrPolicyViolation, dto.Money(req.InitialDeposit), dto.Money(accountType.DepositCeiling), accountType.Code)
		}

		account = domain.Account{
			ClientID:          req.ClientID,
			AccountTypeID:     accountType.AccountTypeID,
			AccountNumber:     s.refs.AccountNumber(),
			Label:             strings.TrimSpace(req.Label),
			Balance:           req.InitialDeposit,
			AvailableBalance:  req.InitialDeposit,
			HistoricalMinimum: req.InitialDeposit,
			OpenedOn:          today,
			LastOperationOn:   &today,
			Status:            domain.AccountActive,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     createdBy,
				LastUpdatedAt: now,
				LastUpdatedBy: createdBy,
			},
		}
		if err := tx.InsertAccount(ctx, &account); err != nil {
			return fmt.Errorf("failed to insert account: %w", err)
		}

		if req.InitialDeposit.IsZero() {
			return nil
		}
		opening = &domain.Transaction{
			AccountID:       account.AccountID,
			Kind:            domain.OperationDeposit,
			Amount:          req.InitialDeposit,
			BalanceBefore:   decimal.Zero,
			BalanceAfter:    req.InitialDeposit,
			Description:     defaultOpeningDescription,
			Reference:       s.refs.TransactionReference(),
			OccurredAt:      now,
			AdministratorID: administratorID,
		}
		if err := tx.InsertTransaction(ctx, opening); err != nil {
			return fmt.Errorf("failed to journal opening deposit: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to open account", slog.Int64("client_id", req.ClientID), slog.Int64("account_type_id", req.AccountTypeID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Account opened",
		slog.Int64("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber),
		slog.String("initial_deposit", dto.Money(req.InitialDeposit)))
	return &account, opening, nil
}

func (s *ledgerService) Deposit(ctx context.Context, accountID int64, req dto.OperationRequest, administratorID *string) (*domain.Transaction, error) {
	return s.move(ctx, accountID, domain.OperationDeposit, req.Amount, describe(req.Description, defaultDepositDescription), administratorID,
		func(acc *domain.Account, at *domain.AccountType) (decimal.Decimal, error) {
			newBalance := acc.Balance.Add(req.Amount)
			if newBalance.GreaterThan(at.DepositCeiling) {
				return decimal.Zero, fmt.Errorf("%w: deposit of %s would bring the balance to %s, above the ceiling of %s",
					apperrors.ErrPolicyViolation, dto.Money(req.Amount), dto.Money(newBalance), dto.Money(at.DepositCeiling))
			}
			return newBalance, nil
		})
}

func (s *ledgerService) Withdraw(ctx context.Context, accountID int64, req dto.OperationRequest, administratorID *string) (*domain.Transaction, error) {
	return s.move(ctx, accountID, domain.OperationWithdrawal, req.Amount, describe(req.Description, defaultWithdrawalDescription), administratorID,
		func(acc *domain.Account, at *domain.AccountType) (decimal.Decimal, error) {
			limit := accounting.WithdrawalCap(acc.Balance, at.MaxWithdrawalPercent)
			if req.Amount.GreaterThan(limit) {
				return decimal.Zero, fmt.Errorf("%w: withdrawal of %s exceeds the limit of %s (%s%% of the balance)",
					apperrors.ErrPolicyViolation, dto.Money(req.Amount), dto.Money(limit), at.MaxWithdrawalPercent.String())
			}
			newBalance := acc.Balance.Sub(req.Amount)
			if newBalance.LessThan(at.MinBalance) {
				return decimal.Zero, fmt.Errorf("%w: withdrawal of %s would leave %s, below the mandatory minimum balance of %s",
					apperrors.ErrPolicyViolation, dto.Money(req.Amount), dto.Money(newBalance), dto.Money(at.MinBalance))
			}
			return newBalance, nil
		})
}

// move runs one deposit or withdrawal: lock, check status, apply the policy check, update and journal.
func (s *ledgerService) move(ctx context.Context, accountID int64, kind domain.OperationKind, amount decimal.Decimal, description string, administratorID *string,
	check func(acc *domain.Account, at *domain.AccountType) (decimal.Decimal, error)) (*domain.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	now := s.Now()
	today := domain.DateOf(now)

	var txn domain.Transaction
	err := s.accountRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		acc, err := tx.LockAccount(ctx, accountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
			}
			return fmt.Errorf("failed to lock account %d: %w", accountID, err)
		}
		if !acc.IsActive() {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrInvalidState, acc.AccountNumber, acc.Status)
		}
		accountType, err := tx.FindAccountType(ctx, acc.AccountTypeID)
		if err != nil {
			return fmt.Errorf("failed to load account type %d: %w", acc.AccountTypeID, err)
		}

		newBalance, err := check(acc, accountType)
		if err != nil {
			return err
		}

		before := acc.Balance
		acc.ApplyBalance(newBalance)
		acc.LastOperationOn = &today
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = actor(administratorID, acc.ClientID)
		if err := tx.UpdateAccountBalance(ctx, *acc); err != nil {
			return fmt.Errorf("failed to update account %d: %w", accountID, err)
		}

		txn = domain.Transaction{
			AccountID:       accountID,
			Kind:            kind,
			Amount:          amount,
			BalanceBefore:   before,
			BalanceAfter:    newBalance,
			Description:     description,
			Reference:       s.refs.TransactionReference(),
			OccurredAt:      now,
			AdministratorID: administratorID,
		}
		if err := tx.InsertTransaction(ctx, &txn); err != nil {
			return fmt.Errorf("failed to journal %s: %w", kind, err)
		}
		return nil
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to apply operation", slog.Int64("account_id", accountID), slog.String("kind", string(kind)))
		return nil, err
	}

	s.LogInfo(ctx, "Operation applied",
		slog.Int64("account_id", accountID),
		slog.String("kind", string(kind)),
		slog.String("amount", dto.Money(amount)),
		slog.String("reference", txn.Reference))
	return &txn, nil
}

// logWriteError logs business rejections at debug level and everything else as an error.
func (s *ledgerService) logWriteError(ctx context.Context, err error, msg string, keyvals ...any) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrPolicyViolation), errors.Is(err, apperrors.ErrInvalidArgument):
		s.LogDebug(ctx, msg, append([]any{slog.String("reason", err.Error())}, keyvals...)...)
	default:
		s.LogError(ctx, err, msg, keyvals...)
	}
}

func (s *ledgerService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.Int64("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *ledgerService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by number", slog.String("account_number", accountNumber))
		}
		return nil, err
	}
	return account, nil
}

func (s *ledgerService) ListAccountsByClient(ctx context.Context, clientID int64) ([]domain.Account, error) {
	if _, err := s.clientRepo.FindClientByID(ctx, clientID); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccountsByClient(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for client", slog.Int64("client_id", clientID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *ledgerService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *ledgerService) GetAvailableBalance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.AvailableBalance, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	txns, next, err := s.transactionRepo.FindTransactionsByAccount(ctx, accountID, limit, nextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list transactions", slog.Int64("account_id", accountID))
		}
		return nil, nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, next, nil
}
