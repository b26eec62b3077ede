package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/savings_ledger_app/internal/models"
	"github.com/SscSPs/savings_ledger_app/internal/utils/mapping"
)

const clientColumns = `client_id, client_number, last_name, first_name, date_of_birth, national_id, email,
	phone, address, password_hash, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxClientRepository struct {
	pool *pgxpool.Pool
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) *PgxClientRepository {
	return &PgxClientRepository{pool: pool}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func (r *PgxClientRepository) findOne(ctx context.Context, what, where string, arg any) (*domain.Client, error) {
	rows, _ := r.pool.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE `+where, arg)
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Client])
	if err != nil {
		return nil, notFound(err, what)
	}
	c := mapping.ToDomainClient(m)
	return &c, nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	return r.findOne(ctx, fmt.Sprintf("client %d", clientID), "client_id = $1", clientID)
}

func (r *PgxClientRepository) FindClientByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.findOne(ctx, "client with email "+email, "LOWER(email) = LOWER($1)", email)
}

func (r *PgxClientRepository) FindClientByNationalID(ctx context.Context, nationalID string) (*domain.Client, error) {
	return r.findOne(ctx, "client with this national ID", "national_id = $1", nationalID)
}

func (r *PgxClientRepository) ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	rows, _ := r.pool.Query(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		ORDER BY client_id
		LIMIT $1 OFFSET $2`, limitArg(limit), offsetArg(offset))
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Client])
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return mapping.ToDomainClientSlice(ms), nil
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client *domain.Client) error {
	m := mapping.ToModelClient(*client)
	err := r.pool.QueryRow(ctx, `
		INSERT INTO clients (client_number, last_name, first_name, date_of_birth, national_id, email, phone,
			address, password_hash, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING client_id`,
		m.ClientNumber, m.LastName, m.FirstName, m.DateOfBirth, m.NationalID, m.Email, m.Phone,
		m.Address, m.PasswordHash, m.Status, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&client.ClientID)
	if err != nil {
		return constraintError(err, "client "+m.Email)
	}
	return nil
}
