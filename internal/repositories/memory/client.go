package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

func (s *Store) FindClientByID(_ context.Context, clientID int64) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[clientID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (s *Store) FindClientByEmail(_ context.Context, email string) (*domain.Client, error) {
	return s.findClient(func(c domain.Client) bool { return strings.EqualFold(c.Email, email) })
}

func (s *Store) FindClientByNationalID(_ context.Context, nationalID string) (*domain.Client, error) {
	return s.findClient(func(c domain.Client) bool { return c.NationalID == nationalID })
}

func (s *Store) findClient(match func(domain.Client) bool) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.clients {
		if match(c) {
			found := c
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) ListClients(_ context.Context, limit int, offset int) ([]domain.Client, error) {
	s.mu.RLock()
	out := make([]domain.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ClientID < out[j].ClientID })
	return page(out, limit, offset), nil
}

func (s *Store) SaveClient(_ context.Context, client *domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.clients {
		switch {
		case strings.EqualFold(existing.Email, client.Email):
			return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, client.Email)
		case existing.NationalID == client.NationalID:
			return fmt.Errorf("%w: national id %s", apperrors.ErrDuplicate, client.NationalID)
		case existing.ClientNumber == client.ClientNumber:
			return fmt.Errorf("%w: client number %s", apperrors.ErrDuplicate, client.ClientNumber)
		}
	}
	s.nextClientID++
	client.ClientID = s.nextClientID
	s.clients[client.ClientID] = *client
	return nil
}

func page[T any](rows []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
