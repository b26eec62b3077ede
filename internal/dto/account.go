package dto

import (
	"time"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest defines the data needed to open a savings account.
type OpenAccountRequest struct {
	ClientID       int64           `json:"clientID" binding:"required,gt=0"`
	AccountTypeID  int64           `json:"accountTypeID" binding:"required,gt=0"`
	Label          string          `json:"label" binding:"max=100"`
	InitialDeposit decimal.Decimal `json:"initialDeposit" binding:"decimal_gte0"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID          int64                `json:"accountID"`
	ClientID           int64                `json:"clientID"`
	AccountTypeID      int64                `json:"accountTypeID"`
	AccountNumber      string               `json:"accountNumber"`
	Label              string               `json:"label"`
	Balance            string               `json:"balance"`
	AvailableBalance   string               `json:"availableBalance"`
	HistoricalMinimum  string               `json:"historicalMinimum"`
	OpenedOn           string               `json:"openedOn"`
	LastInterestCalcOn *string              `json:"lastInterestCalcOn,omitempty"`
	LastOperationOn    *string              `json:"lastOperationOn,omitempty"`
	Status             domain.AccountStatus `json:"status"`
	CreatedAt          time.Time            `json:"createdAt"`
}

// OpenAccountResponse wraps the new account and its initial deposit entry, absent for a zero deposit.
type OpenAccountResponse struct {
	Account        AccountResponse      `json:"account"`
	InitialDeposit *TransactionResponse `json:"initialDeposit,omitempty"`
}

// AvailableBalanceResponse defines the data returned for a balance query.
type AvailableBalanceResponse struct {
	AccountID        int64  `json:"accountID"`
	AvailableBalance string `json:"availableBalance"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// Money renders an amount at storage precision.
func Money(d decimal.Decimal) string {
	return d.StringFixedBank(domain.MoneyPlaces)
}

// Rate renders an interest rate at storage precision.
func Rate(d decimal.Decimal) string {
	return d.StringFixedBank(domain.RatePlaces)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          acc.AccountID,
		ClientID:           acc.ClientID,
		AccountTypeID:      acc.AccountTypeID,
		AccountNumber:      acc.AccountNumber,
		Label:              acc.Label,
		Balance:            Money(acc.Balance),
		AvailableBalance:   Money(acc.AvailableBalance),
		HistoricalMinimum:  Money(acc.HistoricalMinimum),
		OpenedOn:           acc.OpenedOn.Format(time.DateOnly),
		LastInterestCalcOn: formatDate(acc.LastInterestCalcOn),
		LastOperationOn:    formatDate(acc.LastOperationOn),
		Status:             acc.Status,
		CreatedAt:          acc.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
