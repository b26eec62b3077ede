package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every PostgreSQL repository onto a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	journal := newPgxJournalRepository(pool)
	return &portsrepo.RepositoryProvider{
		AccountTypeRepo:    newPgxAccountTypeRepository(pool),
		ClientRepo:         newPgxClientRepository(pool),
		AccountRepo:        newPgxAccountRepository(pool),
		TransactionRepo:    journal,
		InterestPeriodRepo: journal,
		StatisticsRepo:     newPgxStatisticsRepository(pool),
	}
}
