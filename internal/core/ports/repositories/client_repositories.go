package repositories

import (
	"context"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error)
	FindClientByEmail(ctx context.Context, email string) (*domain.Client, error)
	FindClientByNationalID(ctx context.Context, nationalID string) (*domain.Client, error)
	ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client and assigns its ClientID.
	// A duplicate email or national ID yields apperrors.ErrDuplicate.
	SaveClient(ctx context.Context, client *domain.Client) error
}

// ClientRepositoryFacade combines all client repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
