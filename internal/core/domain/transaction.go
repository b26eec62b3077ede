package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OperationKind identifies what moved money on an account.
type OperationKind string

const (
	OperationDeposit             OperationKind = "DEPOSIT"
	OperationWithdrawal          OperationKind = "WITHDRAWAL"
	OperationInterestCapitalized OperationKind = "INTEREST_CAPITALIZED"
)

// ParseOperationKind maps a stored symbolic name to an OperationKind.
func ParseOperationKind(s string) (OperationKind, error) {
	switch k := OperationKind(s); k {
	case OperationDeposit, OperationWithdrawal, OperationInterestCapitalized:
		return k, nil
	default:
		return "", fmt.Errorf("unknown operation kind %q", s)
	}
}

// Transaction is an immutable journal entry bracketing one balance change.
type Transaction struct {
	TransactionID   int64           `json:"transactionID"`
	AccountID       int64           `json:"accountID"`
	Kind            OperationKind   `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceBefore   decimal.Decimal `json:"balanceBefore"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"`
	OccurredAt      time.Time       `json:"occurredAt"`
	AdministratorID *string         `json:"administratorID,omitempty"`
}
