package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
)

type PgxStatisticsRepository struct {
	pool *pgxpool.Pool
}

func newPgxStatisticsRepository(pool *pgxpool.Pool) *PgxStatisticsRepository {
	return &PgxStatisticsRepository{pool: pool}
}

var _ portsrepo.StatisticsReader = (*PgxStatisticsRepository)(nil)

func (r *PgxStatisticsRepository) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	stats := &domain.Statistics{
		TotalBalance:     decimal.Zero,
		AccountsByStatus: make(map[domain.AccountStatus]int64),
	}

	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM clients),
			(SELECT COUNT(*) FROM accounts),
			(SELECT COALESCE(SUM(balance), 0) FROM accounts)`,
	).Scan(&stats.ClientCount, &stats.AccountCount, &stats.TotalBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate statistics: %w", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM accounts GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		stats.AccountsByStatus[domain.AccountStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to count accounts by status: %w", err)
	}
	return stats, nil
}
