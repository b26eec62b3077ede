package mapping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/SscSPs/savings_ledger_app/internal/models"
)

func TestToDomainAccountType_Periodicity(t *testing.T) {
	m := ToModelAccountType(domain.DefaultAccountTypes()[0])
	m.Periodicity = "monthly"
	d, err := ToDomainAccountType(m)
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodicityMonthly, d.Periodicity)

	m.Periodicity = "WEEKLY"
	_, err = ToDomainAccountType(m)
	assert.Error(t, err)

	_, err = ToDomainAccountTypeSlice([]models.AccountType{m})
	assert.Error(t, err)
}

func TestToDomainAccount_KeepsNullableDates(t *testing.T) {
	calc := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	acc := domain.Account{
		AccountID:          3,
		Balance:            decimal.RequireFromString("12.34"),
		OpenedOn:           time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		LastInterestCalcOn: &calc,
		Status:             domain.AccountBlocked,
		AuditFields:        domain.AuditFields{CreatedBy: "client:7"},
	}
	back := ToDomainAccount(ToModelAccount(acc))
	assert.Equal(t, acc, back)
	assert.Nil(t, back.LastOperationOn)
}
