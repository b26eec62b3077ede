package dto

import (
	"time"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

// StatisticsResponse defines the administrative overview.
type StatisticsResponse struct {
	ClientCount      int64                          `json:"clientCount"`
	AccountCount     int64                          `json:"accountCount"`
	TotalBalance     string                         `json:"totalBalance"`
	AverageBalance   string                         `json:"averageBalance"`
	AccountsByStatus map[domain.AccountStatus]int64 `json:"accountsByStatus"`
}

// ToStatisticsResponse converts domain.Statistics to its DTO
func ToStatisticsResponse(s *domain.Statistics) StatisticsResponse {
	return StatisticsResponse{
		ClientCount:      s.ClientCount,
		AccountCount:     s.AccountCount,
		TotalBalance:     Money(s.TotalBalance),
		AverageBalance:   Money(s.AverageBalance),
		AccountsByStatus: s.AccountsByStatus,
	}
}

// SweepResultResponse is one account line of a sweep report.
type SweepResultResponse struct {
	AccountID int64               `json:"accountID"`
	Outcome   domain.SweepOutcome `json:"outcome"`
	Interest  string              `json:"interest"`
	Error     string              `json:"error,omitempty"`
}

// SweepReportResponse defines the data returned after an interest sweep.
type SweepReportResponse struct {
	RunID       string                `json:"runID"`
	StartedAt   time.Time             `json:"startedAt"`
	FinishedAt  time.Time             `json:"finishedAt"`
	Examined    int                   `json:"examined"`
	Capitalized int                   `json:"capitalized"`
	Skipped     int                   `json:"skipped"`
	Failed      int                   `json:"failed"`
	Cancelled   bool                  `json:"cancelled"`
	Results     []SweepResultResponse `json:"results"`
}

// ToSweepReportResponse converts a domain.SweepReport to its DTO
func ToSweepReportResponse(r *domain.SweepReport) SweepReportResponse {
	results := make([]SweepResultResponse, len(r.Results))
	for i, res := range r.Results {
		results[i] = SweepResultResponse{
			AccountID: res.AccountID,
			Outcome:   res.Outcome,
			Interest:  Money(res.Interest),
			Error:     res.Error,
		}
	}
	return SweepReportResponse{
		RunID:       r.RunID,
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
		Examined:    r.Examined,
		Capitalized: r.Capitalized,
		Skipped:     r.Skipped,
		Failed:      r.Failed,
		Cancelled:   r.Cancelled,
		Results:     results,
	}
}
