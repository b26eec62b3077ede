package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/savings_ledger_app/internal/models"
	"github.com/SscSPs/savings_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/savings_ledger_app/internal/utils/pagination"
)

const transactionColumns = `transaction_id, account_id, kind, amount, balance_before, balance_after,
	description, reference, occurred_at, administrator_id`

// PgxJournalRepository reads the append-only journal and the interest periods.
type PgxJournalRepository struct {
	pool *pgxpool.Pool
}

// newPgxJournalRepository creates a new repository for journal reads.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{pool: pool}
}

var (
	_ portsrepo.TransactionReader    = (*PgxJournalRepository)(nil)
	_ portsrepo.InterestPeriodReader = (*PgxJournalRepository)(nil)
)

// FindTransactionsByAccount pages through an account's entries newest first using a keyset cursor.
// One extra row is fetched to decide whether a next page exists; limit <= 0 returns every row.
func (r *PgxJournalRepository) FindTransactionsByAccount(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	var (
		cursorAt *time.Time
		cursorID *int64
	)
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursorAt, cursorID = &c.OccurredAt, &c.TransactionID
	}

	fetch := limitArg(limit)
	if fetch != nil {
		*fetch++
	}

	rows, _ := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE account_id = $1
			AND ($2::timestamptz IS NULL OR (occurred_at, transaction_id) < ($2, $3::bigint))
		ORDER BY occurred_at DESC, transaction_id DESC
		LIMIT $4`, accountID, cursorAt, cursorID, fetch)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions of account %d: %w", accountID, err)
	}

	txns := mapping.ToDomainTransactionSlice(ms)
	if limit <= 0 || len(txns) <= limit {
		return txns, nil, nil
	}
	txns = txns[:limit]
	last := txns[limit-1]
	token := pagination.EncodeToken(pagination.Cursor{OccurredAt: last.OccurredAt, TransactionID: last.TransactionID})
	return txns, &token, nil
}

func (r *PgxJournalRepository) FindInterestPeriodsByAccount(ctx context.Context, accountID int64) ([]domain.InterestPeriod, error) {
	rows, _ := r.pool.Query(ctx, `
		SELECT `+interestPeriodColumns+`
		FROM interest_periods
		WHERE account_id = $1
		ORDER BY interest_period_id DESC`, accountID)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.InterestPeriod])
	if err != nil {
		return nil, fmt.Errorf("failed to list interest periods of account %d: %w", accountID, err)
	}
	return mapping.ToDomainInterestPeriodSlice(ms), nil
}
