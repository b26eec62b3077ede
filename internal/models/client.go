package models

import "time"

// Client represents a row of clients.
type Client struct {
	ClientID     int64     `db:"client_id"`
	ClientNumber string    `db:"client_number"`
	LastName     string    `db:"last_name"`
	FirstName    string    `db:"first_name"`
	DateOfBirth  time.Time `db:"date_of_birth"`
	NationalID   string    `db:"national_id"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	Address      string    `db:"address"`
	PasswordHash string    `db:"password_hash"`
	Status       string    `db:"status"`
	AuditFields
}
