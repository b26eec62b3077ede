package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger_app/internal/dto"
	"github.com/SscSPs/savings_ledger_app/internal/utils"
	"github.com/SscSPs/savings_ledger_app/internal/utils/accounting"
)

const defaultSweepWorkers = 4

// interestService implements the InterestEngineSvc interface
type interestService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryFacade
	accountTypeRepo portsrepo.AccountTypeReader
	periodRepo      portsrepo.InterestPeriodReader
	refs            ReferenceGenerator
	workers         int
}

// InterestOption is a functional option for configuring the interest engine
type InterestOption func(*interestService)

// WithInterestClock replaces the wall clock used for "today" and capitalization timestamps.
func WithInterestClock(clock func() time.Time) InterestOption {
	return func(s *interestService) {
		s.clock = clock
	}
}

// WithInterestReferenceGenerator replaces the generator of capitalization references.
func WithInterestReferenceGenerator(refs ReferenceGenerator) InterestOption {
	return func(s *interestService) {
		s.refs = refs
	}
}

// WithSweepWorkers bounds how many accounts a sweep processes at once.
func WithSweepWorkers(n int) InterestOption {
	return func(s *interestService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewInterestService creates the interest accrual engine with the provided options
func NewInterestService(accountRepo portsrepo.AccountRepositoryFacade, accountTypeRepo portsrepo.AccountTypeReader, periodRepo portsrepo.InterestPeriodReader, options ...InterestOption) portssvc.InterestEngineSvc {
	svc := &interestService{
		BaseService:     newBaseService(),
		accountRepo:     accountRepo,
		accountTypeRepo: accountTypeRepo,
		periodRepo:      periodRepo,
		refs:            utils.NewReferenceGenerator(),
		workers:         defaultSweepWorkers,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.InterestEngineSvc = (*interestService)(nil)

func (s *interestService) CalculatePeriod(ctx context.Context, accountID int64, periodStart, periodEnd time.Time) (*domain.InterestPeriod, error) {
	now := s.Now()
	var period *domain.InterestPeriod
	err := s.accountRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		acc, err := lockAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}
		period, err = s.calculate(ctx, tx, acc, periodStart, periodEnd, now)
		return err
	})
	if err != nil {
		s.logEngineError(ctx, err, "Failed to calculate interest", slog.Int64("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Interest calculated",
		slog.Int64("account_id", accountID),
		slog.Int64("interest_period_id", period.InterestPeriodID),
		slog.String("net_interest", dto.Money(period.NetInterest)))
	return period, nil
}

func (s *interestService) CapitalizePending(ctx context.Context, accountID int64) (*domain.Transaction, error) {
	now := s.Now()
	var txn *domain.Transaction
	err := s.accountRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		acc, err := lockAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}
		txn, err = s.capitalize(ctx, tx, acc, now)
		return err
	})
	if err != nil {
		s.logEngineError(ctx, err, "Failed to capitalize interest", slog.Int64("account_id", accountID))
		return nil, err
	}
	if txn == nil {
		s.LogDebug(ctx, "No interest to capitalize", slog.Int64("account_id", accountID))
		return nil, nil
	}

	s.LogInfo(ctx, "Interest capitalized",
		slog.Int64("account_id", accountID),
		slog.String("amount", dto.Money(txn.Amount)),
		slog.String("reference", txn.Reference))
	return txn, nil
}

func lockAccount(ctx context.Context, tx portsrepo.LedgerTx, accountID int64) (*domain.Account, error) {
	acc, err := tx.LockAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to lock account %d: %w", accountID, err)
	}
	return acc, nil
}

// calculate records one CALCULATED period using the current balance as the average balance.
func (s *interestService) calculate(ctx context.Context, tx portsrepo.LedgerTx, acc *domain.Account, periodStart, periodEnd, now time.Time) (*domain.InterestPeriod, error) {
	days, err := accounting.DayCount(periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	accountType, err := tx.FindAccountType(ctx, acc.AccountTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account type %d: %w", acc.AccountTypeID, err)
	}
	interest, err := accounting.Interest(acc.Balance, accountType.InterestRate, days)
	if err != nil {
		return nil, err
	}

	period := &domain.InterestPeriod{
		AccountID:      acc.AccountID,
		PeriodStart:    domain.DateOf(periodStart),
		PeriodEnd:      domain.DateOf(periodEnd),
		AverageBalance: acc.Balance,
		RateApplied:    accountType.InterestRate,
		DayCount:       days,
		GrossInterest:  interest,
		NetInterest:    interest,
		CalculatedAt:   now,
		Status:         domain.InterestCalculated,
	}
	if err := tx.InsertInterestPeriod(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to record interest period: %w", err)
	}
	return period, nil
}

// capitalize folds every CALCULATED period into the balance. The deposit ceiling does not apply.
// Nothing changes and a nil transaction is returned when nothing is pending or the pending total is zero.
func (s *interestService) capitalize(ctx context.Context, tx portsrepo.LedgerTx, acc *domain.Account, now time.Time) (*domain.Transaction, error) {
	pending, err := tx.FindInterestPeriodsByStatus(ctx, acc.AccountID, domain.InterestCalculated)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending interest for account %d: %w", acc.AccountID, err)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	total := decimal.Zero
	ids := make([]int64, len(pending))
	for i, p := range pending {
		total = total.Add(p.NetInterest)
		ids[i] = p.InterestPeriodID
	}

	// zero-valued periods stay CALCULATED and fold into the next non-zero capitalization
	if total.IsZero() {
		return nil, nil
	}

	today := domain.DateOf(now)
	before := acc.Balance
	acc.ApplyBalance(before.Add(total))
	acc.LastInterestCalcOn = &today
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = "system:interest"
	if err := tx.UpdateAccountBalance(ctx, *acc); err != nil {
		return nil, fmt.Errorf("failed to update account %d: %w", acc.AccountID, err)
	}
	if err := tx.MarkInterestPeriodsCapitalized(ctx, ids, today); err != nil {
		return nil, fmt.Errorf("failed to mark interest periods capitalized: %w", err)
	}

	txn := &domain.Transaction{
		AccountID:     acc.AccountID,
		Kind:          domain.OperationInterestCapitalized,
		Amount:        total,
		BalanceBefore: before,
		BalanceAfter:  acc.Balance,
		Description:   fmt.Sprintf("Interest capitalization (%d period(s))", len(pending)),
		Reference:     s.refs.TransactionReference(),
		OccurredAt:    now,
	}
	if err := tx.InsertTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to journal interest capitalization: %w", err)
	}
	return txn, nil
}

// SweepAllAccounts processes every ACTIVE account with a bounded pool of workers.
// Cancellation stops scheduling new accounts; an account already started finishes.
// One account's failure never stops the others.
func (s *interestService) SweepAllAccounts(ctx context.Context) (*domain.SweepReport, error) {
	report := &domain.SweepReport{
		RunID:     uuid.NewString(),
		StartedAt: s.Now(),
		Results:   []domain.SweepResult{},
	}
	logger := s.GetLogger(ctx).With(slog.String("sweep_run_id", report.RunID))

	ids, err := s.accountRepo.ListAccountIDsByStatus(ctx, domain.AccountActive)
	if err != nil {
		logger.Error("Failed to list active accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list active accounts: %w", err)
	}

	today := s.Today()
	work := context.WithoutCancel(ctx)

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(s.workers)
	for _, id := range ids {
		if ctx.Err() != nil {
			mu.Lock()
			report.Cancelled = true
			mu.Unlock()
			break
		}
		g.Go(func() error {
			// the slot may only free up after cancellation
			if ctx.Err() != nil {
				mu.Lock()
				report.Cancelled = true
				mu.Unlock()
				return nil
			}
			res := s.sweepAccount(work, id, today)
			if res.Outcome == domain.SweepFailed {
				logger.Error("Interest sweep failed for account",
					slog.Int64("account_id", id),
					slog.String("error", res.Error))
			}
			mu.Lock()
			report.Add(res)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(report.Results, func(i, j int) bool { return report.Results[i].AccountID < report.Results[j].AccountID })
	report.FinishedAt = s.Now()

	logger.Info("Interest sweep finished",
		slog.Int("examined", report.Examined),
		slog.Int("capitalized", report.Capitalized),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		slog.Bool("cancelled", report.Cancelled))
	return report, nil
}

// sweepAccount decides and applies interest for one account inside a single unit of work,
// so a period is never left calculated but uncapitalized by the sweep.
func (s *interestService) sweepAccount(ctx context.Context, accountID int64, today time.Time) (res domain.SweepResult) {
	res = domain.SweepResult{AccountID: accountID, Outcome: domain.SweepSkipped, Interest: decimal.Zero}
	defer func() {
		if r := recover(); r != nil {
			res = domain.SweepResult{
				AccountID: accountID,
				Outcome:   domain.SweepFailed,
				Interest:  decimal.Zero,
				Error:     fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	now := s.Now()
	err := s.accountRepo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		acc, err := lockAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if !acc.IsActive() {
			return nil
		}
		accountType, err := tx.FindAccountType(ctx, acc.AccountTypeID)
		if err != nil {
			return fmt.Errorf("failed to load account type %d: %w", acc.AccountTypeID, err)
		}

		periodStart := acc.InterestPeriodStart()
		if !accounting.ShouldCapitalize(periodStart, today, accountType.Periodicity) || !periodStart.Before(today) {
			return nil
		}
		if _, err := s.calculate(ctx, tx, acc, periodStart, today, now); err != nil {
			return err
		}
		txn, err := s.capitalize(ctx, tx, acc, now)
		if err != nil {
			return err
		}
		if txn != nil {
			res.Outcome = domain.SweepCapitalized
			res.Interest = txn.Amount
		}
		return nil
	})
	if err != nil {
		return domain.SweepResult{AccountID: accountID, Outcome: domain.SweepFailed, Interest: decimal.Zero, Error: err.Error()}
	}
	return res
}

func (s *interestService) ListInterestPeriods(ctx context.Context, accountID int64) ([]domain.InterestPeriod, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	periods, err := s.periodRepo.FindInterestPeriodsByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list interest periods", slog.Int64("account_id", accountID))
		return nil, fmt.Errorf("failed to list interest periods: %w", err)
	}
	if periods == nil {
		return []domain.InterestPeriod{}, nil
	}
	return periods, nil
}

func (s *interestService) NextCapitalizationDate(ctx context.Context, accountID int64) (time.Time, error) {
	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return time.Time{}, err
	}
	accountType, err := s.accountTypeRepo.FindAccountTypeByID(ctx, acc.AccountTypeID)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load account type %d: %w", acc.AccountTypeID, err)
	}
	return accounting.NextCapitalizationDate(acc.InterestPeriodStart(), accountType.Periodicity)
}

func (s *interestService) logEngineError(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrInvalidArgument) {
		s.LogDebug(ctx, msg, append([]any{slog.String("reason", err.Error())}, keyvals...)...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}
