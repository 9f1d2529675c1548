package entity

import "time"

// CustomerAccount representa una cuenta de cliente creada por auto-registro.
type CustomerAccount struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Phone        *string
	Address      *string
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
