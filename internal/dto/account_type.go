package dto

import "github.com/SscSPs/savings_ledger_app/internal/core/domain"

// AccountTypeResponse defines the data returned for a savings product.
type AccountTypeResponse struct {
	AccountTypeID        int64              `json:"accountTypeID"`
	Code                 string             `json:"code"`
	Name                 string             `json:"name"`
	Description          string             `json:"description"`
	InterestRate         string             `json:"interestRate"`
	MinInitialDeposit    string             `json:"minInitialDeposit"`
	MinBalance           string             `json:"minBalance"`
	DepositCeiling       string             `json:"depositCeiling"`
	MaxWithdrawalPercent string             `json:"maxWithdrawalPercent"`
	KeepingFee           string             `json:"keepingFee"`
	Periodicity          domain.Periodicity `json:"periodicity"`
	IsActive             bool               `json:"isActive"`
}

// ToAccountTypeResponse converts a domain.AccountType to its DTO
func ToAccountTypeResponse(t *domain.AccountType) AccountTypeResponse {
	return AccountTypeResponse{
		AccountTypeID:        t.AccountTypeID,
		Code:                 t.Code,
		Name:                 t.Name,
		Description:          t.Description,
		InterestRate:         Rate(t.InterestRate),
		MinInitialDeposit:    Money(t.MinInitialDeposit),
		MinBalance:           Money(t.MinBalance),
		DepositCeiling:       Money(t.DepositCeiling),
		MaxWithdrawalPercent: Money(t.MaxWithdrawalPercent),
		KeepingFee:           Money(t.KeepingFee),
		Periodicity:          t.Periodicity,
		IsActive:             t.IsActive,
	}
}

// ToListAccountTypeResponse converts account types to DTOs
func ToListAccountTypeResponse(types []domain.AccountType) []AccountTypeResponse {
	res := make([]AccountTypeResponse, len(types))
	for i := range types {
		res[i] = ToAccountTypeResponse(&types[i])
	}
	return res
}
