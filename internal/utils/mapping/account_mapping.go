package mapping

import (
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/SscSPs/savings_ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:          d.AccountID,
		ClientID:           d.ClientID,
		AccountTypeID:      d.AccountTypeID,
		AccountNumber:      d.AccountNumber,
		Label:              d.Label,
		Balance:            d.Balance,
		AvailableBalance:   d.AvailableBalance,
		HistoricalMinimum:  d.HistoricalMinimum,
		OpenedOn:           d.OpenedOn,
		LastInterestCalcOn: d.LastInterestCalcOn,
		LastOperationOn:    d.LastOperationOn,
		Status:             string(d.Status),
		ClosureReason:      d.ClosureReason,
		ClosedOn:           d.ClosedOn,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		ClientID:           m.ClientID,
		AccountTypeID:      m.AccountTypeID,
		AccountNumber:      m.AccountNumber,
		Label:              m.Label,
		Balance:            m.Balance,
		AvailableBalance:   m.AvailableBalance,
		HistoricalMinimum:  m.HistoricalMinimum,
		OpenedOn:           m.OpenedOn,
		LastInterestCalcOn: m.LastInterestCalcOn,
		LastOperationOn:    m.LastOperationOn,
		Status:             domain.AccountStatus(m.Status),
		ClosureReason:      m.ClosureReason,
		ClosedOn:           m.ClosedOn,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
