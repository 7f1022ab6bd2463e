package entity

import "time"

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in PasswordHash.
// Accounts start inactive and are activated by email confirmation.
type User struct {
	ID           int64
	FirstName    string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
