package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SweepOutcome is what happened to one account during an interest sweep.
type SweepOutcome string

const (
	SweepCapitalized SweepOutcome = "CAPITALIZED"
	SweepSkipped     SweepOutcome = "SKIPPED"
	SweepFailed      SweepOutcome = "FAILED"
)

// SweepResult is the per-account line of a SweepReport.
type SweepResult struct {
	AccountID int64           `json:"accountID"`
	Outcome   SweepOutcome    `json:"outcome"`
	Interest  decimal.Decimal `json:"interest"`
	Error     string          `json:"error,omitempty"`
}

// SweepReport aggregates one run of the batch interest sweep.
type SweepReport struct {
	RunID       string        `json:"runID"`
	StartedAt   time.Time     `json:"startedAt"`
	FinishedAt  time.Time     `json:"finishedAt"`
	Examined    int           `json:"examined"`
	Capitalized int           `json:"capitalized"`
	Skipped     int           `json:"skipped"`
	Failed      int           `json:"failed"`
	Cancelled   bool          `json:"cancelled"`
	Results     []SweepResult `json:"results"`
}

// Add records one account's result and updates the counters.
func (r *SweepReport) Add(res SweepResult) {
	r.Examined++
	switch res.Outcome {
	case SweepCapitalized:
		r.Capitalized++
	case SweepSkipped:
		r.Skipped++
	case SweepFailed:
		r.Failed++
	}
	r.Results = append(r.Results, res)
}
