package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InterestStatus is the state of an InterestPeriod.
// CALCULATED -> CAPITALIZED. CANCELLED is reserved; nothing produces it yet.
type InterestStatus string

const (
	InterestCalculated  InterestStatus = "CALCULATED"
	InterestCapitalized InterestStatus = "CAPITALIZED"
	InterestCancelled   InterestStatus = "CANCELLED"
)

// ParseInterestStatus maps a stored symbolic name to an InterestStatus.
func ParseInterestStatus(s string) (InterestStatus, error) {
	switch st := InterestStatus(s); st {
	case InterestCalculated, InterestCapitalized, InterestCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown interest status %q", s)
	}
}

// InterestPeriod records the interest computed for one account over one period.
// NetInterest equals GrossInterest: no withholding is applied.
type InterestPeriod struct {
	InterestPeriodID int64           `json:"interestPeriodID"`
	AccountID        int64           `json:"accountID"`
	PeriodStart      time.Time       `json:"periodStart"`
	PeriodEnd        time.Time       `json:"periodEnd"`
	AverageBalance   decimal.Decimal `json:"averageBalance"`
	RateApplied      decimal.Decimal `json:"rateApplied"`
	DayCount         int             `json:"dayCount"`
	GrossInterest    decimal.Decimal `json:"grossInterest"`
	NetInterest      decimal.Decimal `json:"netInterest"`
	CalculatedAt     time.Time       `json:"calculatedAt"`
	CapitalizedOn    *time.Time      `json:"capitalizedOn,omitempty"`
	Status           InterestStatus  `json:"status"`
}
