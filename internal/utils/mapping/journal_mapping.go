package mapping

import (
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/SscSPs/savings_ledger_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		Kind:            string(d.Kind),
		Amount:          d.Amount,
		BalanceBefore:   d.BalanceBefore,
		BalanceAfter:    d.BalanceAfter,
		Description:     d.Description,
		Reference:       d.Reference,
		OccurredAt:      d.OccurredAt,
		AdministratorID: d.AdministratorID,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		Kind:            domain.OperationKind(m.Kind),
		Amount:          m.Amount,
		BalanceBefore:   m.BalanceBefore,
		BalanceAfter:    m.BalanceAfter,
		Description:     m.Description,
		Reference:       m.Reference,
		OccurredAt:      m.OccurredAt,
		AdministratorID: m.AdministratorID,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelInterestPeriod converts a domain InterestPeriod to a model InterestPeriod
func ToModelInterestPeriod(d domain.InterestPeriod) models.InterestPeriod {
	return models.InterestPeriod{
		InterestPeriodID: d.InterestPeriodID,
		AccountID:        d.AccountID,
		PeriodStart:      d.PeriodStart,
		PeriodEnd:        d.PeriodEnd,
		AverageBalance:   d.AverageBalance,
		RateApplied:      d.RateApplied,
		DayCount:         d.DayCount,
		GrossInterest:    d.GrossInterest,
		NetInterest:      d.NetInterest,
		CalculatedAt:     d.CalculatedAt,
		CapitalizedOn:    d.CapitalizedOn,
		Status:           string(d.Status),
	}
}

// ToDomainInterestPeriod converts a model InterestPeriod to a domain InterestPeriod
func ToDomainInterestPeriod(m models.InterestPeriod) domain.InterestPeriod {
	return domain.InterestPeriod{
		InterestPeriodID: m.InterestPeriodID,
		AccountID:        m.AccountID,
		PeriodStart:      m.PeriodStart,
		PeriodEnd:        m.PeriodEnd,
		AverageBalance:   m.AverageBalance,
		RateApplied:      m.RateApplied,
		DayCount:         m.DayCount,
		GrossInterest:    m.GrossInterest,
		NetInterest:      m.NetInterest,
		CalculatedAt:     m.CalculatedAt,
		CapitalizedOn:    m.CapitalizedOn,
		Status:           domain.InterestStatus(m.Status),
	}
}

// ToDomainInterestPeriodSlice converts model InterestPeriods to domain InterestPeriods
func ToDomainInterestPeriodSlice(ms []models.InterestPeriod) []domain.InterestPeriod {
	ds := make([]domain.InterestPeriod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInterestPeriod(m)
	}
	return ds
}
