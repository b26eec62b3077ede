package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of a savings account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountBlocked   AccountStatus = "BLOCKED"
	AccountClosed    AccountStatus = "CLOSED"
	AccountSuspended AccountStatus = "SUSPENDED"
)

// ParseAccountStatus maps a stored symbolic name to an AccountStatus.
func ParseAccountStatus(s string) (AccountStatus, error) {
	switch st := AccountStatus(s); st {
	case AccountActive, AccountBlocked, AccountClosed, AccountSuspended:
		return st, nil
	default:
		return "", fmt.Errorf("unknown account status %q", s)
	}
}

// AccountStatuses lists every status in a stable order.
func AccountStatuses() []AccountStatus {
	return []AccountStatus{AccountActive, AccountBlocked, AccountClosed, AccountSuspended}
}

// Account is the ledger aggregate. AvailableBalance always mirrors Balance: no holds are modelled.
type Account struct {
	AccountID          int64           `json:"accountID"`
	ClientID           int64           `json:"clientID"`
	AccountTypeID      int64           `json:"accountTypeID"`
	AccountNumber      string          `json:"accountNumber"`
	Label              string          `json:"label"`
	Balance            decimal.Decimal `json:"balance"`
	AvailableBalance   decimal.Decimal `json:"availableBalance"`
	HistoricalMinimum  decimal.Decimal `json:"historicalMinimum"`
	OpenedOn           time.Time       `json:"openedOn"`
	LastInterestCalcOn *time.Time      `json:"lastInterestCalcOn,omitempty"`
	LastOperationOn    *time.Time      `json:"lastOperationOn,omitempty"`
	Status             AccountStatus   `json:"status"`
	ClosureReason      string          `json:"closureReason,omitempty"`
	ClosedOn           *time.Time      `json:"closedOn,omitempty"`
	AuditFields
}

// IsActive reports whether money may move on the account.
func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}

// ApplyBalance sets a new balance, keeps the available balance in step and lowers the
// historical minimum when the new balance goes under it.
func (a *Account) ApplyBalance(newBalance decimal.Decimal) {
	a.Balance = newBalance
	a.AvailableBalance = newBalance
	if newBalance.LessThan(a.HistoricalMinimum) {
		a.HistoricalMinimum = newBalance
	}
}

// InterestPeriodStart is the first day of the next interest period.
func (a *Account) InterestPeriodStart() time.Time {
	if a.LastInterestCalcOn != nil {
		return DateOf(*a.LastInterestCalcOn)
	}
	return DateOf(a.OpenedOn)
}
