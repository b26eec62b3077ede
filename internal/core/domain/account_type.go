package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Periodicity controls how often interest is computed and capitalized.
type Periodicity string

const (
	PeriodicityDaily     Periodicity = "DAILY"
	PeriodicityMonthly   Periodicity = "MONTHLY"
	PeriodicityQuarterly Periodicity = "QUARTERLY"
)

// ParsePeriodicity maps a stored symbolic name to a Periodicity.
func ParsePeriodicity(s string) (Periodicity, error) {
	switch p := Periodicity(strings.ToUpper(strings.TrimSpace(s))); p {
	case PeriodicityDaily, PeriodicityMonthly, PeriodicityQuarterly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown periodicity %q", s)
	}
}

// AccountType is a savings product: the policy bundle applied to every account opened against it.
type AccountType struct {
	AccountTypeID        int64           `json:"accountTypeID"`
	Code                 string          `json:"code"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	InterestRate         decimal.Decimal `json:"interestRate"` // annual, percent
	MinInitialDeposit    decimal.Decimal `json:"minInitialDeposit"`
	MinBalance           decimal.Decimal `json:"minBalance"`
	DepositCeiling       decimal.Decimal `json:"depositCeiling"`
	MaxWithdrawalPercent decimal.Decimal `json:"maxWithdrawalPercent"`
	KeepingFee           decimal.Decimal `json:"keepingFee"`
	Periodicity          Periodicity     `json:"periodicity"`
	IsActive             bool            `json:"isActive"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// DefaultAccountTypes returns the products seeded at system initialization.
func DefaultAccountTypes() []AccountType {
	return []AccountType{
		{
			Code:                 "LIVRET_A",
			Name:                 "Livret A",
			Description:          "Regulated passbook savings account",
			InterestRate:         decimal.RequireFromString("3.000"),
			MinInitialDeposit:    decimal.RequireFromString("10.00"),
			MinBalance:           decimal.RequireFromString("10.00"),
			DepositCeiling:       decimal.RequireFromString("22950.00"),
			MaxWithdrawalPercent: decimal.RequireFromString("100.00"),
			KeepingFee:           decimal.Zero,
			Periodicity:          PeriodicityDaily,
			IsActive:             true,
		},
		{
			Code:                 "CEL",
			Name:                 "Compte Epargne Logement",
			Description:          "Home savings account",
			InterestRate:         decimal.RequireFromString("2.000"),
			MinInitialDeposit:    decimal.RequireFromString("300.00"),
			MinBalance:           decimal.RequireFromString("300.00"),
			DepositCeiling:       decimal.RequireFromString("15300.00"),
			MaxWithdrawalPercent: decimal.RequireFromString("50.00"),
			KeepingFee:           decimal.Zero,
			Periodicity:          PeriodicityMonthly,
			IsActive:             true,
		},
		{
			Code:                 "LDD",
			Name:                 "Livret de Developpement Durable",
			Description:          "Sustainable development savings account",
			InterestRate:         decimal.RequireFromString("3.000"),
			MinInitialDeposit:    decimal.RequireFromString("15.00"),
			MinBalance:           decimal.RequireFromString("15.00"),
			DepositCeiling:       decimal.RequireFromString("12000.00"),
			MaxWithdrawalPercent: decimal.RequireFromString("100.00"),
			KeepingFee:           decimal.Zero,
			Periodicity:          PeriodicityDaily,
			IsActive:             true,
		},
		{
			Code:                 "PEL",
			Name:                 "Plan Epargne Logement",
			Description:          "Home savings plan, withdrawals closed",
			InterestRate:         decimal.RequireFromString("2.250"),
			MinInitialDeposit:    decimal.RequireFromString("225.00"),
			MinBalance:           decimal.RequireFromString("225.00"),
			DepositCeiling:       decimal.RequireFromString("61200.00"),
			MaxWithdrawalPercent: decimal.Zero,
			KeepingFee:           decimal.Zero,
			Periodicity:          PeriodicityQuarterly,
			IsActive:             true,
		},
	}
}
