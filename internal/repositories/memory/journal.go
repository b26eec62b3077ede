package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/SscSPs/savings_ledger_app/internal/utils/pagination"
)

func (s *Store) FindTransactionsByAccount(_ context.Context, accountID int64, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	s.mu.RLock()
	rows := make([]domain.Transaction, 0)
	for _, txn := range s.transactions {
		if txn.AccountID != accountID {
			continue
		}
		if cursor != nil && !cursor.Before(txn.OccurredAt, txn.TransactionID) {
			continue
		}
		rows = append(rows, txn)
	}
	s.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].OccurredAt.Equal(rows[j].OccurredAt) {
			return rows[i].TransactionID > rows[j].TransactionID
		}
		return rows[i].OccurredAt.After(rows[j].OccurredAt)
	})

	if limit <= 0 || len(rows) <= limit {
		return rows, nil, nil
	}
	rows = rows[:limit]
	last := rows[limit-1]
	token := pagination.EncodeToken(pagination.Cursor{OccurredAt: last.OccurredAt, TransactionID: last.TransactionID})
	return rows, &token, nil
}

func (s *Store) FindInterestPeriodsByAccount(_ context.Context, accountID int64) ([]domain.InterestPeriod, error) {
	s.mu.RLock()
	out := make([]domain.InterestPeriod, 0)
	for _, p := range s.periods {
		if p.AccountID == accountID {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].InterestPeriodID > out[j].InterestPeriodID })
	return out, nil
}

func (s *Store) GetStatistics(_ context.Context) (*domain.Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.Statistics{
		ClientCount:      int64(len(s.clients)),
		AccountCount:     int64(len(s.accounts)),
		TotalBalance:     decimal.Zero,
		AccountsByStatus: make(map[domain.AccountStatus]int64),
	}
	for _, acc := range s.accounts {
		stats.TotalBalance = stats.TotalBalance.Add(acc.Balance)
		stats.AccountsByStatus[acc.Status]++
	}
	return stats, nil
}
