package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

func (s *Store) FindAccountTypeByID(_ context.Context, accountTypeID int64) (*domain.AccountType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	at, ok := s.accountTypes[accountTypeID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &at, nil
}

func (s *Store) FindAccountTypeByCode(_ context.Context, code string) (*domain.AccountType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, at := range s.accountTypes {
		if at.Code == code {
			found := at
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) ListAccountTypes(_ context.Context, activeOnly bool) ([]domain.AccountType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.AccountType, 0, len(s.accountTypes))
	for _, at := range s.accountTypes {
		if activeOnly && !at.IsActive {
			continue
		}
		out = append(out, at)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountTypeID < out[j].AccountTypeID })
	return out, nil
}

func (s *Store) SaveAccountType(_ context.Context, accountType *domain.AccountType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accountTypes {
		if existing.Code == accountType.Code {
			accountType.AccountTypeID = existing.AccountTypeID
			return nil
		}
	}
	s.nextAccountTypeID++
	accountType.AccountTypeID = s.nextAccountTypeID
	s.accountTypes[accountType.AccountTypeID] = *accountType
	return nil
}
