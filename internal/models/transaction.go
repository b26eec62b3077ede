package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a row of the append-only transactions journal.
type Transaction struct {
	TransactionID   int64           `db:"transaction_id"`
	AccountID       int64           `db:"account_id"`
	Kind            string          `db:"kind"`
	Amount          decimal.Decimal `db:"amount"`
	BalanceBefore   decimal.Decimal `db:"balance_before"`
	BalanceAfter    decimal.Decimal `db:"balance_after"`
	Description     string          `db:"description"`
	Reference       string          `db:"reference"`
	OccurredAt      time.Time       `db:"occurred_at"`
	AdministratorID *string         `db:"administrator_id"`
}
