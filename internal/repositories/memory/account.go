package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

func (s *Store) FindAccountByID(_ context.Context, accountID int64) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (s *Store) FindAccountByNumber(_ context.Context, accountNumber string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, acc := range s.accounts {
		if acc.AccountNumber == accountNumber {
			found := acc
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) ListAccountsByClient(_ context.Context, clientID int64) ([]domain.Account, error) {
	return s.sortedAccounts(func(a domain.Account) bool { return a.ClientID == clientID }), nil
}

func (s *Store) ListAccounts(_ context.Context, limit int, offset int) ([]domain.Account, error) {
	return page(s.sortedAccounts(func(domain.Account) bool { return true }), limit, offset), nil
}

func (s *Store) ListAccountIDsByStatus(_ context.Context, status domain.AccountStatus) ([]int64, error) {
	accounts := s.sortedAccounts(func(a domain.Account) bool { return a.Status == status })
	ids := make([]int64, len(accounts))
	for i, a := range accounts {
		ids[i] = a.AccountID
	}
	return ids, nil
}

func (s *Store) sortedAccounts(keep func(domain.Account) bool) []domain.Account {
	s.mu.RLock()
	out := make([]domain.Account, 0)
	for _, acc := range s.accounts {
		if keep(acc) {
			out = append(out, acc)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out
}
