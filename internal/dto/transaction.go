package dto

import (
	"time"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OperationRequest defines the body of a deposit or a withdrawal.
type OperationRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	Description string          `json:"description" binding:"max=255"`
}

// TransactionResponse defines the data returned for a journal entry.
type TransactionResponse struct {
	TransactionID   int64                `json:"transactionID"`
	AccountID       int64                `json:"accountID"`
	Kind            domain.OperationKind `json:"kind"`
	Amount          string               `json:"amount"`
	BalanceBefore   string               `json:"balanceBefore"`
	BalanceAfter    string               `json:"balanceAfter"`
	Description     string               `json:"description"`
	Reference       string               `json:"reference"`
	OccurredAt      time.Time            `json:"occurredAt"`
	AdministratorID *string              `json:"administratorID,omitempty"`
}

// ListTransactionsParams defines query parameters for listing journal entries.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of journal entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		Kind:            txn.Kind,
		Amount:          Money(txn.Amount),
		BalanceBefore:   Money(txn.BalanceBefore),
		BalanceAfter:    Money(txn.BalanceAfter),
		Description:     txn.Description,
		Reference:       txn.Reference,
		OccurredAt:      txn.OccurredAt,
		AdministratorID: txn.AdministratorID,
	}
}

// ToListTransactionResponse converts journal entries to DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
