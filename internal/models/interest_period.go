package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InterestPeriod represents a row of interest_periods.
type InterestPeriod struct {
	InterestPeriodID int64           `db:"interest_period_id"`
	AccountID        int64           `db:"account_id"`
	PeriodStart      time.Time       `db:"period_start"`
	PeriodEnd        time.Time       `db:"period_end"`
	AverageBalance   decimal.Decimal `db:"average_balance"`
	RateApplied      decimal.Decimal `db:"rate_applied"`
	DayCount         int             `db:"day_count"`
	GrossInterest    decimal.Decimal `db:"gross_interest"`
	NetInterest      decimal.Decimal `db:"net_interest"`
	CalculatedAt     time.Time       `db:"calculated_at"`
	CapitalizedOn    *time.Time      `db:"capitalized_on"`
	Status           string          `db:"status"`
}
