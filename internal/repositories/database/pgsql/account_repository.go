package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/savings_ledger_app/internal/models"
	"github.com/SscSPs/savings_ledger_app/internal/utils/mapping"
)

const accountColumns = `account_id, client_id, account_type_id, account_number, label, balance,
	available_balance, historical_minimum, opened_on, last_interest_calc_on, last_operation_on, status,
	closure_reason, closed_on, created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository reads accounts and opens units of work for mutating them.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func collectAccount(rows pgx.Rows, what string) (*domain.Account, error) {
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, notFound(err, what)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1`, accountID)
	return collectAccount(rows, fmt.Sprintf("account %d", accountID))
}

func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_number = $1`, accountNumber)
	return collectAccount(rows, "account "+accountNumber)
}

func (r *PgxAccountRepository) ListAccountsByClient(ctx context.Context, clientID int64) ([]domain.Account, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE client_id = $1 ORDER BY account_id`, clientID)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts of client %d: %w", clientID, err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY account_id LIMIT $1 OFFSET $2`, limitArg(limit), offsetArg(offset))
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

func (r *PgxAccountRepository) ListAccountIDsByStatus(ctx context.Context, status domain.AccountStatus) ([]int64, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT account_id FROM accounts WHERE status = $1 ORDER BY account_id`, string(status))
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to list %s accounts: %w", status, err)
	}
	return ids, nil
}
