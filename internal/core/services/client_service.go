package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger_app/internal/dto"
	"github.com/SscSPs/savings_ledger_app/internal/utils"
)

type clientService struct {
	BaseService
	repo portsrepo.ClientRepositoryFacade
	refs ReferenceGenerator
}

// ClientOption is a functional option for configuring the client service
type ClientOption func(*clientService)

// WithClientReferenceGenerator replaces the client number generator.
func WithClientReferenceGenerator(refs ReferenceGenerator) ClientOption {
	return func(s *clientService) {
		s.refs = refs
	}
}

// NewClientService creates the client registry.
func NewClientService(repo portsrepo.ClientRepositoryFacade, options ...ClientOption) portssvc.ClientSvcFacade {
	svc := &clientService{
		BaseService: newBaseService(),
		repo:        repo,
		refs:        utils.NewReferenceGenerator(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) RegisterClient(ctx context.Context, req dto.RegisterClientRequest) (*domain.Client, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	dob, err := time.Parse(time.DateOnly, req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date of birth %q", apperrors.ErrValidation, req.DateOfBirth)
	}

	if _, err := s.repo.FindClientByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: a client with email %s already exists", apperrors.ErrDuplicate, email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check client email")
		return nil, fmt.Errorf("failed to check client email: %w", err)
	}
	if _, err := s.repo.FindClientByNationalID(ctx, req.NationalID); err == nil {
		return nil, fmt.Errorf("%w: a client with this national ID already exists", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check client national ID")
		return nil, fmt.Errorf("failed to check client national ID: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	client := domain.Client{
		ClientNumber: s.refs.ClientNumber(),
		LastName:     strings.TrimSpace(req.LastName),
		FirstName:    strings.TrimSpace(req.FirstName),
		DateOfBirth:  dob,
		NationalID:   strings.TrimSpace(req.NationalID),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		PasswordHash: hash,
		Status:       domain.ClientActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "self",
			LastUpdatedAt: now,
			LastUpdatedBy: "self",
		},
	}
	if err := s.repo.SaveClient(ctx, &client); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save client")
		}
		return nil, err
	}

	s.LogInfo(ctx, "Client registered", slog.Int64("client_id", client.ClientID), slog.String("client_number", client.ClientNumber))
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	client, err := s.repo.FindClientByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find client", slog.Int64("client_id", clientID))
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetClientByEmail(ctx context.Context, email string) (*domain.Client, error) {
	client, err := s.repo.FindClientByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find client by email")
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	clients, err := s.repo.ListClients(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

func (s *clientService) Authenticate(ctx context.Context, email string, password string) (*domain.Client, error) {
	client, err := s.GetClientByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if client.Status != domain.ClientActive || !utils.CheckPasswordHash(password, client.PasswordHash) {
		s.LogDebug(ctx, "Login rejected", slog.Int64("client_id", client.ClientID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	return client, nil
}
