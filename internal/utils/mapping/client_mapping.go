package mapping

import (
	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/SscSPs/savings_ledger_app/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:     d.ClientID,
		ClientNumber: d.ClientNumber,
		LastName:     d.LastName,
		FirstName:    d.FirstName,
		DateOfBirth:  d.DateOfBirth,
		NationalID:   d.NationalID,
		Email:        d.Email,
		Phone:        d.Phone,
		Address:      d.Address,
		PasswordHash: d.PasswordHash,
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:     m.ClientID,
		ClientNumber: m.ClientNumber,
		LastName:     m.LastName,
		FirstName:    m.FirstName,
		DateOfBirth:  m.DateOfBirth,
		NationalID:   m.NationalID,
		Email:        m.Email,
		Phone:        m.Phone,
		Address:      m.Address,
		PasswordHash: m.PasswordHash,
		Status:       domain.ClientStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClientSlice converts a slice of model Clients to domain Clients
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
