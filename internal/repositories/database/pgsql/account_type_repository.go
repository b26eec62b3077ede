package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/savings_ledger_app/internal/models"
	"github.com/SscSPs/savings_ledger_app/internal/utils/mapping"
)

const accountTypeColumns = `account_type_id, code, name, description, interest_rate, min_initial_deposit,
	min_balance, deposit_ceiling, max_withdrawal_percent, keeping_fee, periodicity, is_active, created_at`

type PgxAccountTypeRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountTypeRepository creates a new repository for the product catalog.
func newPgxAccountTypeRepository(pool *pgxpool.Pool) *PgxAccountTypeRepository {
	return &PgxAccountTypeRepository{pool: pool}
}

var _ portsrepo.AccountTypeRepositoryFacade = (*PgxAccountTypeRepository)(nil)

func findAccountType(ctx context.Context, q dbtx, accountTypeID int64) (*domain.AccountType, error) {
	rows, _ := q.Query(ctx, `SELECT `+accountTypeColumns+` FROM account_types WHERE account_type_id = $1`, accountTypeID)
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AccountType])
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("account type %d", accountTypeID))
	}
	at, err := mapping.ToDomainAccountType(m)
	if err != nil {
		return nil, fmt.Errorf("account type %d: %w", accountTypeID, err)
	}
	return &at, nil
}

func (r *PgxAccountTypeRepository) FindAccountTypeByID(ctx context.Context, accountTypeID int64) (*domain.AccountType, error) {
	return findAccountType(ctx, r.pool, accountTypeID)
}

func (r *PgxAccountTypeRepository) FindAccountTypeByCode(ctx context.Context, code string) (*domain.AccountType, error) {
	rows, _ := r.pool.Query(ctx, `SELECT `+accountTypeColumns+` FROM account_types WHERE code = $1`, code)
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AccountType])
	if err != nil {
		return nil, notFound(err, "account type "+code)
	}
	at, err := mapping.ToDomainAccountType(m)
	if err != nil {
		return nil, fmt.Errorf("account type %s: %w", code, err)
	}
	return &at, nil
}

func (r *PgxAccountTypeRepository) ListAccountTypes(ctx context.Context, activeOnly bool) ([]domain.AccountType, error) {
	rows, _ := r.pool.Query(ctx, `
		SELECT `+accountTypeColumns+`
		FROM account_types
		WHERE ($1 = FALSE OR is_active)
		ORDER BY account_type_id`, activeOnly)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountType])
	if err != nil {
		return nil, fmt.Errorf("failed to list account types: %w", err)
	}
	return mapping.ToDomainAccountTypeSlice(ms)
}

// SaveAccountType inserts the product unless its code exists; either way AccountTypeID is set.
func (r *PgxAccountTypeRepository) SaveAccountType(ctx context.Context, accountType *domain.AccountType) error {
	m := mapping.ToModelAccountType(*accountType)
	err := r.pool.QueryRow(ctx, `
		INSERT INTO account_types (code, name, description, interest_rate, min_initial_deposit, min_balance,
			deposit_ceiling, max_withdrawal_percent, keeping_fee, periodicity, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (code) DO NOTHING
		RETURNING account_type_id`,
		m.Code, m.Name, m.Description, m.InterestRate, m.MinInitialDeposit, m.MinBalance,
		m.DepositCeiling, m.MaxWithdrawalPercent, m.KeepingFee, m.Periodicity, m.IsActive, m.CreatedAt,
	).Scan(&accountType.AccountTypeID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = r.pool.QueryRow(ctx, `SELECT account_type_id FROM account_types WHERE code = $1`, m.Code).
			Scan(&accountType.AccountTypeID)
	}
	if err != nil {
		return constraintError(err, "account type "+m.Code)
	}
	return nil
}
