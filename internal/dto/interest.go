package dto

import (
	"time"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

// CalculateInterestRequest defines the period to compute interest for.
// Dates are calendar dates in YYYY-MM-DD form.
type CalculateInterestRequest struct {
	PeriodStart string `json:"periodStart" binding:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"periodEnd" binding:"required,datetime=2006-01-02"`
}

// InterestPeriodResponse defines the data returned for an interest period.
type InterestPeriodResponse struct {
	InterestPeriodID int64                 `json:"interestPeriodID"`
	AccountID        int64                 `json:"accountID"`
	PeriodStart      string                `json:"periodStart"`
	PeriodEnd        string                `json:"periodEnd"`
	AverageBalance   string                `json:"averageBalance"`
	RateApplied      string                `json:"rateApplied"`
	DayCount         int                   `json:"dayCount"`
	GrossInterest    string                `json:"grossInterest"`
	NetInterest      string                `json:"netInterest"`
	CalculatedAt     time.Time             `json:"calculatedAt"`
	CapitalizedOn    *string               `json:"capitalizedOn,omitempty"`
	Status           domain.InterestStatus `json:"status"`
}

// InterestHistoryResponse lists an account's periods with the next expected capitalization.
type InterestHistoryResponse struct {
	AccountID              int64                    `json:"accountID"`
	NextCapitalizationDate string                   `json:"nextCapitalizationDate"`
	Periods                []InterestPeriodResponse `json:"periods"`
}

// CapitalizeResponse reports what a capitalization did. Transaction is nil when nothing was pending.
type CapitalizeResponse struct {
	Capitalized bool                 `json:"capitalized"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// ToInterestPeriodResponse converts a domain.InterestPeriod to its DTO
func ToInterestPeriodResponse(p *domain.InterestPeriod) InterestPeriodResponse {
	return InterestPeriodResponse{
		InterestPeriodID: p.InterestPeriodID,
		AccountID:        p.AccountID,
		PeriodStart:      p.PeriodStart.Format(time.DateOnly),
		PeriodEnd:        p.PeriodEnd.Format(time.DateOnly),
		AverageBalance:   Money(p.AverageBalance),
		RateApplied:      Rate(p.RateApplied),
		DayCount:         p.DayCount,
		GrossInterest:    Money(p.GrossInterest),
		NetInterest:      Money(p.NetInterest),
		CalculatedAt:     p.CalculatedAt,
		CapitalizedOn:    formatDate(p.CapitalizedOn),
		Status:           p.Status,
	}
}

// ToListInterestPeriodResponse converts interest periods to DTOs
func ToListInterestPeriodResponse(periods []domain.InterestPeriod) []InterestPeriodResponse {
	res := make([]InterestPeriodResponse, len(periods))
	for i := range periods {
		res[i] = ToInterestPeriodResponse(&periods[i])
	}
	return res
}
