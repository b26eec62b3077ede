package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a row of accounts.
// Nullable dates are pointers; closure_reason is stored as an empty string when unset.
type Account struct {
	AccountID          int64           `db:"account_id"`
	ClientID           int64           `db:"client_id"`
	AccountTypeID      int64           `db:"account_type_id"`
	AccountNumber      string          `db:"account_number"`
	Label              string          `db:"label"`
	Balance            decimal.Decimal `db:"balance"`
	AvailableBalance   decimal.Decimal `db:"available_balance"`
	HistoricalMinimum  decimal.Decimal `db:"historical_minimum"`
	OpenedOn           time.Time       `db:"opened_on"`
	LastInterestCalcOn *time.Time      `db:"last_interest_calc_on"`
	LastOperationOn    *time.Time      `db:"last_operation_on"`
	Status             string          `db:"status"`
	ClosureReason      string          `db:"closure_reason"`
	ClosedOn           *time.Time      `db:"closed_on"`
	AuditFields
}
