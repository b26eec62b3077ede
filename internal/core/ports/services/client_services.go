package services

import (
	"context"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/SscSPs/savings_ledger_app/internal/dto"
)

// ClientReaderSvc defines read operations for clients
type ClientReaderSvc interface {
	GetClientByID(ctx context.Context, clientID int64) (*domain.Client, error)
	GetClientByEmail(ctx context.Context, email string) (*domain.Client, error)
	ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for clients
type ClientWriterSvc interface {
	RegisterClient(ctx context.Context, req dto.RegisterClientRequest) (*domain.Client, error)
}

// ClientAuthSvc verifies client credentials
type ClientAuthSvc interface {
	// Authenticate returns the client when the password matches, apperrors.ErrUnauthorized otherwise.
	Authenticate(ctx context.Context, email string, password string) (*domain.Client, error)
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
	ClientAuthSvc
}
