package services

import (
	"context"
	"time"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

// InterestEngineSvc runs the calculate-then-capitalize cycle.
type InterestEngineSvc interface {
	// CalculatePeriod records interest for [periodStart, periodEnd] using the current balance.
	CalculatePeriod(ctx context.Context, accountID int64, periodStart, periodEnd time.Time) (*domain.InterestPeriod, error)

	// CapitalizePending credits every CALCULATED period. It returns nil, nil when nothing is pending.
	CapitalizePending(ctx context.Context, accountID int64) (*domain.Transaction, error)

	// SweepAllAccounts calculates and capitalizes interest for every active account that is due.
	SweepAllAccounts(ctx context.Context) (*domain.SweepReport, error)

	// ListInterestPeriods returns an account's interest history, newest first.
	ListInterestPeriods(ctx context.Context, accountID int64) ([]domain.InterestPeriod, error)

	// NextCapitalizationDate projects the next capitalization for an account from its product periodicity.
	NextCapitalizationDate(ctx context.Context, accountID int64) (time.Time, error)
}
