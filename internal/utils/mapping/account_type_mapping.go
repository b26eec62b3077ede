package mapping

import (
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/SscSPs/savings_ledger_app/internal/models"
)

// ToModelAccountType converts a domain AccountType to a model AccountType
func ToModelAccountType(d domain.AccountType) models.AccountType {
	return models.AccountType{
		AccountTypeID:        d.AccountTypeID,
		Code:                 d.Code,
		Name:                 d.Name,
		Description:          d.Description,
		InterestRate:         d.InterestRate,
		MinInitialDeposit:    d.MinInitialDeposit,
		MinBalance:           d.MinBalance,
		DepositCeiling:       d.DepositCeiling,
		MaxWithdrawalPercent: d.MaxWithdrawalPercent,
		KeepingFee:           d.KeepingFee,
		Periodicity:          string(d.Periodicity),
		IsActive:             d.IsActive,
		CreatedAt:            d.CreatedAt,
	}
}

// ToDomainAccountType converts a model AccountType to a domain AccountType.
// An unknown periodicity is an error: the engine cannot schedule such a product.
func ToDomainAccountType(m models.AccountType) (domain.AccountType, error) {
	periodicity, err := domain.ParsePeriodicity(m.Periodicity)
	if err != nil {
		return domain.AccountType{}, err
	}
	return domain.AccountType{
		AccountTypeID:        m.AccountTypeID,
		Code:                 m.Code,
		Name:                 m.Name,
		Description:          m.Description,
		InterestRate:         m.InterestRate,
		MinInitialDeposit:    m.MinInitialDeposit,
		MinBalance:           m.MinBalance,
		DepositCeiling:       m.DepositCeiling,
		MaxWithdrawalPercent: m.MaxWithdrawalPercent,
		KeepingFee:           m.KeepingFee,
		Periodicity:          periodicity,
		IsActive:             m.IsActive,
		CreatedAt:            m.CreatedAt,
	}, nil
}

// ToDomainAccountTypeSlice converts model AccountTypes to domain AccountTypes
func ToDomainAccountTypeSlice(ms []models.AccountType) ([]domain.AccountType, error) {
	ds := make([]domain.AccountType, len(ms))
	for i, m := range ms {
		d, err := ToDomainAccountType(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
