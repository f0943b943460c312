package entity

import "time"

// User represents a registered account.
type User struct {
	ID                  int64
	Username            string
	PasswordHash        string
	FirstName           string
	LastName            string
	Email               string
	Phone               string
	Website             string
	LastLoginAt         *time.Time
	LastFailedLoginAt   *time.Time
	FailedLoginAttempts int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Profile holds the user fields that can be edited after registration.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Website   string
}

// Registration holds the data needed to create a user.
// Password is the plaintext password and is never persisted.
type Registration struct {
	Username string
	Password string
	Profile
}
