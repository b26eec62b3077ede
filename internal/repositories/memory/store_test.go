package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
)

func seedAccount(t *testing.T, s *Store, balance string) domain.Account {
	t.Helper()
	ctx := context.Background()

	at := domain.DefaultAccountTypes()[0]
	require.NoError(t, s.SaveAccountType(ctx, &at))
	client := domain.Client{ClientNumber: "CLI1", Email: "a@example.com", NationalID: "AB123", Status: domain.ClientActive}
	require.NoError(t, s.SaveClient(ctx, &client))

	acc := domain.Account{
		ClientID:      client.ClientID,
		AccountTypeID: at.AccountTypeID,
		AccountNumber: "EPA1",
		OpenedOn:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:        domain.AccountActive,
	}
	acc.ApplyBalance(decimal.RequireFromString(balance))
	acc.HistoricalMinimum = acc.Balance
	require.NoError(t, s.WithinTx(ctx, func(ctx context.Context, tx repositories.LedgerTx) error {
		return tx.InsertAccount(ctx, &acc)
	}))
	return acc
}

func credit(ctx context.Context, s *Store, accountID int64, amount decimal.Decimal, ref string) error {
	return s.WithinTx(ctx, func(ctx context.Context, tx repositories.LedgerTx) error {
		acc, err := tx.LockAccount(ctx, accountID)
		if err != nil {
			return err
		}
		before := acc.Balance
		acc.ApplyBalance(before.Add(amount))
		if err := tx.UpdateAccountBalance(ctx, *acc); err != nil {
			return err
		}
		return tx.InsertTransaction(ctx, &domain.Transaction{
			AccountID:     accountID,
			Kind:          domain.OperationDeposit,
			Amount:        amount,
			BalanceBefore: before,
			BalanceAfter:  acc.Balance,
			Reference:     ref,
			OccurredAt:    time.Now().UTC(),
		})
	})
}

func TestWithinTx_CommitsTogether(t *testing.T) {
	s := NewStore()
	acc := seedAccount(t, s, "100.00")

	require.NoError(t, credit(context.Background(), s, acc.AccountID, decimal.RequireFromString("25.00"), "OPE1"))

	got, err := s.FindAccountByID(context.Background(), acc.AccountID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("125.00")))
	assert.True(t, got.AvailableBalance.Equal(got.Balance))

	txns, next, err := s.FindTransactionsByAccount(context.Background(), acc.AccountID, 10, nil)
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, txns, 1)
	assert.Equal(t, "OPE1", txns[0].Reference)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	s := NewStore()
	acc := seedAccount(t, s, "100.00")
	boom := errors.New("boom")

	err := s.WithinTx(context.Background(), func(ctx context.Context, tx repositories.LedgerTx) error {
		locked, err := tx.LockAccount(ctx, acc.AccountID)
		require.NoError(t, err)
		locked.ApplyBalance(decimal.RequireFromString("1.00"))
		require.NoError(t, tx.UpdateAccountBalance(ctx, *locked))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.FindAccountByID(context.Background(), acc.AccountID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("100.00")))

	// The lock must have been released.
	require.NoError(t, credit(context.Background(), s, acc.AccountID, decimal.NewFromInt(1), "OPE2"))
}

func TestWithinTx_SerializesSameAccount(t *testing.T) {
	s := NewStore()
	acc := seedAccount(t, s, "0.00")

	const workers = 50
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- credit(context.Background(), s, acc.AccountID, decimal.NewFromInt(1), "OPE-"+decimal.NewFromInt(int64(i)).String())
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.FindAccountByID(context.Background(), acc.AccountID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(workers)), "balance %s", got.Balance)

	txns, _, err := s.FindTransactionsByAccount(context.Background(), acc.AccountID, 0, nil)
	require.NoError(t, err)
	assert.Len(t, txns, workers)
}

func TestLockAccount_HonoursContext(t *testing.T) {
	s := NewStore()
	acc := seedAccount(t, s, "10.00")

	held := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = s.WithinTx(context.Background(), func(ctx context.Context, tx repositories.LedgerTx) error {
			_, err := tx.LockAccount(ctx, acc.AccountID)
			close(held)
			<-done
			return err
		})
	}()
	<-held

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := credit(ctx, s, acc.AccountID, decimal.NewFromInt(1), "OPE9")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(done)
}

func TestLockAccount_NotFound(t *testing.T) {
	s := NewStore()
	err := s.WithinTx(context.Background(), func(ctx context.Context, tx repositories.LedgerTx) error {
		_, err := tx.LockAccount(ctx, 99)
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateWithoutLockRejected(t *testing.T) {
	s := NewStore()
	acc := seedAccount(t, s, "10.00")
	err := s.WithinTx(context.Background(), func(ctx context.Context, tx repositories.LedgerTx) error {
		return tx.UpdateAccountBalance(ctx, acc)
	})
	assert.Error(t, err)
}

func TestFindTransactionsByAccount_Paginates(t *testing.T) {
	s := NewStore()
	acc := seedAccount(t, s, "0.00")
	for i := 0; i < 5; i++ {
		require.NoError(t, credit(context.Background(), s, acc.AccountID, decimal.NewFromInt(1), "OPE-P"+decimal.NewFromInt(int64(i)).String()))
	}

	first, next, err := s.FindTransactionsByAccount(context.Background(), acc.AccountID, 2, nil)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotNil(t, next)
	assert.Greater(t, first[0].TransactionID, first[1].TransactionID)

	second, next, err := s.FindTransactionsByAccount(context.Background(), acc.AccountID, 2, next)
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.NotNil(t, next)
	assert.Less(t, second[0].TransactionID, first[1].TransactionID)

	last, next, err := s.FindTransactionsByAccount(context.Background(), acc.AccountID, 2, next)
	require.NoError(t, err)
	assert.Len(t, last, 1)
	assert.Nil(t, next)

	bad := "%%%"
	_, _, err = s.FindTransactionsByAccount(context.Background(), acc.AccountID, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestInterestPeriods_StagedAndCommitted(t *testing.T) {
	s := NewStore()
	acc := seedAccount(t, s, "1000.00")
	ctx := context.Background()

	require.NoError(t, s.WithinTx(ctx, func(ctx context.Context, tx repositories.LedgerTx) error {
		return tx.InsertInterestPeriod(ctx, &domain.InterestPeriod{
			AccountID:   acc.AccountID,
			NetInterest: decimal.RequireFromString("30.00"),
			Status:      domain.InterestCalculated,
		})
	}))

	require.NoError(t, s.WithinTx(ctx, func(ctx context.Context, tx repositories.LedgerTx) error {
		pending, err := tx.FindInterestPeriodsByStatus(ctx, acc.AccountID, domain.InterestCalculated)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		require.NoError(t, tx.MarkInterestPeriodsCapitalized(ctx, []int64{pending[0].InterestPeriodID}, time.Now()))

		pending, err = tx.FindInterestPeriodsByStatus(ctx, acc.AccountID, domain.InterestCalculated)
		require.NoError(t, err)
		assert.Empty(t, pending)
		return nil
	}))

	periods, err := s.FindInterestPeriodsByAccount(ctx, acc.AccountID)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, domain.InterestCapitalized, periods[0].Status)
	assert.NotNil(t, periods[0].CapitalizedOn)
}

func TestSaveClient_Duplicates(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.SaveClient(ctx, &domain.Client{ClientNumber: "CLI1", Email: "a@example.com", NationalID: "X1"}))

	err := s.SaveClient(ctx, &domain.Client{ClientNumber: "CLI2", Email: "A@example.com", NationalID: "X2"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	err = s.SaveClient(ctx, &domain.Client{ClientNumber: "CLI3", Email: "b@example.com", NationalID: "X1"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestSaveAccountType_IdempotentByCode(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	first := domain.DefaultAccountTypes()[1]
	require.NoError(t, s.SaveAccountType(ctx, &first))
	again := domain.DefaultAccountTypes()[1]
	require.NoError(t, s.SaveAccountType(ctx, &again))

	assert.Equal(t, first.AccountTypeID, again.AccountTypeID)
	all, err := s.ListAccountTypes(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetStatistics(t *testing.T) {
	s := NewStore()
	seedAccount(t, s, "150.50")

	stats, err := s.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ClientCount)
	assert.Equal(t, int64(1), stats.AccountCount)
	assert.True(t, stats.TotalBalance.Equal(decimal.RequireFromString("150.50")))
	assert.Equal(t, int64(1), stats.AccountsByStatus[domain.AccountActive])
}
