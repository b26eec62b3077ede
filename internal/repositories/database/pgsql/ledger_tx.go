package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/savings_ledger_app/internal/models"
	"github.com/SscSPs/savings_ledger_app/internal/utils/mapping"
)

const interestPeriodColumns = `interest_period_id, account_id, period_start, period_end, average_balance,
	rate_applied, day_count, gross_interest, net_interest, calculated_at, capitalized_on, status`

// ledgerTx implements portsrepo.LedgerTx on top of an open pgx transaction.
type ledgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*ledgerTx)(nil)

// LockAccount reads the account row FOR UPDATE; concurrent writers on the same account queue behind it.
func (t *ledgerTx) LockAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	rows, _ := t.tx.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1 FOR UPDATE`, accountID)
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock account %d: %w", accountID, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (t *ledgerTx) FindAccountType(ctx context.Context, accountTypeID int64) (*domain.AccountType, error) {
	return findAccountType(ctx, t.tx, accountTypeID)
}

func (t *ledgerTx) InsertAccount(ctx context.Context, account *domain.Account) error {
	m := mapping.ToModelAccount(*account)
	err := t.tx.QueryRow(ctx, `
		INSERT INTO accounts (client_id, account_type_id, account_number, label, balance, available_balance,
			historical_minimum, opened_on, last_interest_calc_on, last_operation_on, status, closure_reason,
			closed_on, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING account_id`,
		m.ClientID, m.AccountTypeID, m.AccountNumber, m.Label, m.Balance, m.AvailableBalance,
		m.HistoricalMinimum, m.OpenedOn, m.LastInterestCalcOn, m.LastOperationOn, m.Status, m.ClosureReason,
		m.ClosedOn, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&account.AccountID)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		switch pgErr.ConstraintName {
		case "accounts_client_id_fkey":
			return fmt.Errorf("%w: client %d", apperrors.ErrNotFound, account.ClientID)
		case "accounts_account_type_id_fkey":
			return fmt.Errorf("%w: account type %d", apperrors.ErrNotFound, account.AccountTypeID)
		}
	}
	return constraintError(err, "account number "+account.AccountNumber)
}

func (t *ledgerTx) UpdateAccountBalance(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	tag, err := t.tx.Exec(ctx, `
		UPDATE accounts
		SET balance = $2, available_balance = $3, historical_minimum = $4, last_interest_calc_on = $5,
			last_operation_on = $6, last_updated_at = $7, last_updated_by = $8
		WHERE account_id = $1`,
		m.AccountID, m.Balance, m.AvailableBalance, m.HistoricalMinimum, m.LastInterestCalcOn,
		m.LastOperationOn, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %d: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, account.AccountID)
	}
	return nil
}

func (t *ledgerTx) InsertTransaction(ctx context.Context, txn *domain.Transaction) error {
	m := mapping.ToModelTransaction(*txn)
	err := t.tx.QueryRow(ctx, `
		INSERT INTO transactions (account_id, kind, amount, balance_before, balance_after, description,
			reference, occurred_at, administrator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING transaction_id`,
		m.AccountID, m.Kind, m.Amount, m.BalanceBefore, m.BalanceAfter, m.Description,
		m.Reference, m.OccurredAt, m.AdministratorID,
	).Scan(&txn.TransactionID)
	if err != nil {
		return constraintError(err, "transaction "+m.Reference)
	}
	return nil
}

func (t *ledgerTx) InsertInterestPeriod(ctx context.Context, period *domain.InterestPeriod) error {
	m := mapping.ToModelInterestPeriod(*period)
	err := t.tx.QueryRow(ctx, `
		INSERT INTO interest_periods (account_id, period_start, period_end, average_balance, rate_applied,
			day_count, gross_interest, net_interest, calculated_at, capitalized_on, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING interest_period_id`,
		m.AccountID, m.PeriodStart, m.PeriodEnd, m.AverageBalance, m.RateApplied,
		m.DayCount, m.GrossInterest, m.NetInterest, m.CalculatedAt, m.CapitalizedOn, m.Status,
	).Scan(&period.InterestPeriodID)
	if err != nil {
		return constraintError(err, fmt.Sprintf("interest period of account %d", period.AccountID))
	}
	return nil
}

func (t *ledgerTx) FindInterestPeriodsByStatus(ctx context.Context, accountID int64, status domain.InterestStatus) ([]domain.InterestPeriod, error) {
	rows, _ := t.tx.Query(ctx, `
		SELECT `+interestPeriodColumns+`
		FROM interest_periods
		WHERE account_id = $1 AND status = $2
		ORDER BY interest_period_id`, accountID, string(status))
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.InterestPeriod])
	if err != nil {
		return nil, fmt.Errorf("failed to list %s interest periods of account %d: %w", status, accountID, err)
	}
	return mapping.ToDomainInterestPeriodSlice(ms), nil
}

func (t *ledgerTx) MarkInterestPeriodsCapitalized(ctx context.Context, periodIDs []int64, capitalizedOn time.Time) error {
	if len(periodIDs) == 0 {
		return nil
	}
	rows, _ := t.tx.Query(ctx, `
		UPDATE interest_periods
		SET status = $2, capitalized_on = $3
		WHERE interest_period_id = ANY($1)
		RETURNING interest_period_id`,
		periodIDs, string(domain.InterestCapitalized), domain.DateOf(capitalizedOn))
	updated, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return fmt.Errorf("failed to capitalize interest periods: %w", err)
	}
	if len(updated) == len(periodIDs) {
		return nil
	}
	seen := make(map[int64]bool, len(updated))
	for _, id := range updated {
		seen[id] = true
	}
	for _, id := range periodIDs {
		if !seen[id] {
			return fmt.Errorf("%w: interest period %d", apperrors.ErrNotFound, id)
		}
	}
	return nil
}
