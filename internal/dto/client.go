package dto

import (
	"time"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

// RegisterClientRequest defines the data needed to register a client.
type RegisterClientRequest struct {
	LastName    string `json:"lastName" binding:"required,max=100"`
	FirstName   string `json:"firstName" binding:"required,max=100"`
	DateOfBirth string `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	NationalID  string `json:"nationalID" binding:"required,max=20"`
	Email       string `json:"email" binding:"required,email,max=150"`
	Phone       string `json:"phone" binding:"max=20"`
	Address     string `json:"address" binding:"max=255"`
	Password    string `json:"password" binding:"required,min=8"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID     int64               `json:"clientID"`
	ClientNumber string              `json:"clientNumber"`
	LastName     string              `json:"lastName"`
	FirstName    string              `json:"firstName"`
	DateOfBirth  string              `json:"dateOfBirth"`
	NationalID   string              `json:"nationalID"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone,omitempty"`
	Address      string              `json:"address,omitempty"`
	Status       domain.ClientStatus `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ToClientResponse converts a domain.Client to its DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:     c.ClientID,
		ClientNumber: c.ClientNumber,
		LastName:     c.LastName,
		FirstName:    c.FirstName,
		DateOfBirth:  c.DateOfBirth.Format(time.DateOnly),
		NationalID:   c.NationalID,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
	}
}

// ToListClientResponse converts clients to DTOs
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i := range clients {
		res[i] = ToClientResponse(&clients[i])
	}
	return res
}
