package domain

import "time"

// ClientStatus is the lifecycle state of a bank client.
type ClientStatus string

const (
	ClientActive   ClientStatus = "ACTIVE"
	ClientInactive ClientStatus = "INACTIVE"
)

// Client owns savings accounts. Email and national ID (CIN) are unique.
type Client struct {
	ClientID     int64        `json:"clientID"`
	ClientNumber string       `json:"clientNumber"`
	LastName     string       `json:"lastName"`
	FirstName    string       `json:"firstName"`
	DateOfBirth  time.Time    `json:"dateOfBirth"`
	NationalID   string       `json:"nationalID"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Address      string       `json:"address"`
	PasswordHash string       `json:"-"`
	Status       ClientStatus `json:"status"`
	AuditFields
}
