package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountTypeRepo    AccountTypeRepositoryFacade
	ClientRepo         ClientRepositoryFacade
	AccountRepo        AccountRepositoryFacade
	TransactionRepo    TransactionReader
	InterestPeriodRepo InterestPeriodReader
	StatisticsRepo     StatisticsReader
}
