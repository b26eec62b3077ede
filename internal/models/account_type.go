package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType represents a row of account_types.
type AccountType struct {
	AccountTypeID        int64           `db:"account_type_id"`
	Code                 string          `db:"code"`
	Name                 string          `db:"name"`
	Description          string          `db:"description"`
	InterestRate         decimal.Decimal `db:"interest_rate"`
	MinInitialDeposit    decimal.Decimal `db:"min_initial_deposit"`
	MinBalance           decimal.Decimal `db:"min_balance"`
	DepositCeiling       decimal.Decimal `db:"deposit_ceiling"`
	MaxWithdrawalPercent decimal.Decimal `db:"max_withdrawal_percent"`
	KeepingFee           decimal.Decimal `db:"keeping_fee"`
	Periodicity          string          `db:"periodicity"`
	IsActive             bool            `db:"is_active"`
	CreatedAt            time.Time       `db:"created_at"`
}
