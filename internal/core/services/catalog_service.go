package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger_app/internal/core/ports/services"
)

// CatalogCache stores the list of active account types between reads.
// A miss is reported with ok == false and a nil error.
type CatalogCache interface {
	GetActiveAccountTypes(ctx context.Context) (types []domain.AccountType, ok bool, err error)
	SetActiveAccountTypes(ctx context.Context, types []domain.AccountType) error
	InvalidateAccountTypes(ctx context.Context) error
}

type catalogService struct {
	BaseService
	repo  portsrepo.AccountTypeRepositoryFacade
	cache CatalogCache
}

// CatalogOption is a functional option for configuring the catalog service
type CatalogOption func(*catalogService)

// WithCatalogCache adds a read-through cache in front of the active product list.
func WithCatalogCache(cache CatalogCache) CatalogOption {
	return func(s *catalogService) {
		s.cache = cache
	}
}

// NewCatalogService creates the account-type catalog.
func NewCatalogService(repo portsrepo.AccountTypeRepositoryFacade, options ...CatalogOption) portssvc.AccountTypeCatalogSvc {
	svc := &catalogService{BaseService: newBaseService(), repo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountTypeCatalogSvc = (*catalogService)(nil)

func (s *catalogService) GetAccountType(ctx context.Context, accountTypeID int64) (*domain.AccountType, error) {
	at, err := s.repo.FindAccountTypeByID(ctx, accountTypeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account type", slog.Int64("account_type_id", accountTypeID))
		}
		return nil, err
	}
	return at, nil
}

func (s *catalogService) GetAccountTypeByCode(ctx context.Context, code string) (*domain.AccountType, error) {
	at, err := s.repo.FindAccountTypeByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account type by code", slog.String("code", code))
		}
		return nil, err
	}
	return at, nil
}

func (s *catalogService) ListAccountTypes(ctx context.Context, activeOnly bool) ([]domain.AccountType, error) {
	if activeOnly && s.cache != nil {
		cached, ok, err := s.cache.GetActiveAccountTypes(ctx)
		switch {
		case err != nil:
			s.LogError(ctx, err, "Catalog cache read failed, falling back to storage")
		case ok:
			return cached, nil
		}
	}

	types, err := s.repo.ListAccountTypes(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account types")
		return nil, fmt.Errorf("failed to list account types: %w", err)
	}
	if types == nil {
		types = []domain.AccountType{}
	}

	if activeOnly && s.cache != nil {
		if err := s.cache.SetActiveAccountTypes(ctx, types); err != nil {
			s.LogError(ctx, err, "Catalog cache write failed")
		}
	}
	return types, nil
}

func (s *catalogService) EnsureDefaultCatalog(ctx context.Context) error {
	created := 0
	for _, at := range domain.DefaultAccountTypes() {
		if _, err := s.repo.FindAccountTypeByCode(ctx, at.Code); err == nil {
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to look up account type %s: %w", at.Code, err)
		}
		at.CreatedAt = s.Now()
		if err := s.repo.SaveAccountType(ctx, &at); err != nil {
			s.LogError(ctx, err, "Failed to seed account type", slog.String("code", at.Code))
			return fmt.Errorf("failed to seed account type %s: %w", at.Code, err)
		}
		created++
	}

	if created > 0 {
		s.LogInfo(ctx, "Default catalog seeded", slog.Int("created", created))
		if s.cache != nil {
			if err := s.cache.InvalidateAccountTypes(ctx); err != nil {
				s.LogError(ctx, err, "Catalog cache invalidation failed")
			}
		}
	}
	return nil
}
