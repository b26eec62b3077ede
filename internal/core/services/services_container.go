package services

import (
	portsrepo "github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// cache may be nil, in which case the catalog always reads from storage.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, cache CatalogCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	var catalogOpts []CatalogOption
	if cache != nil {
		catalogOpts = append(catalogOpts, WithCatalogCache(cache))
	}
	container.Catalog = NewCatalogService(repos.AccountTypeRepo, catalogOpts...)
	container.Client = NewClientService(repos.ClientRepo)
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.ClientRepo, repos.TransactionRepo)
	container.Interest = NewInterestService(
		repos.AccountRepo,
		repos.AccountTypeRepo,
		repos.InterestPeriodRepo,
		WithSweepWorkers(cfg.SweepWorkers),
	)
	container.Statistics = NewStatisticsService(repos.StatisticsRepo)

	return container
}
