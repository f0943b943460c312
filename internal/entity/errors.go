package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrShortCodeExists is returned when attempting to create a URL with a short code that already exists.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrURLNotFound is returned when a URL with the specified short code cannot be found.
	ErrURLNotFound = errors.New("url not found")
	// ErrURLNotFoundOrNotOwned is returned when a URL cannot be deleted because it
	// doesn't exist or belongs to another user. The two cases are not distinguished.
	ErrURLNotFoundOrNotOwned = errors.New("url not found or not owned")
	// ErrInvalidURL is returned when the original URL is not an absolute URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrMaxRetriesExceeded is returned when no free short code was found within the retry limit.
	ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")

	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameExists is returned when the username is already taken.
	ErrUsernameExists = errors.New("username exists")
	// ErrEmailExists is returned when the email is already taken.
	ErrEmailExists = errors.New("email exists")
	// ErrInvalidCredentials is returned when the password doesn't match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountLocked is matched by LockoutError.
	ErrAccountLocked = errors.New("account locked")

	// ErrSessionNotFound is returned when a session token is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrStorage wraps persistence failures that have no more specific kind.
	ErrStorage = errors.New("storage failure")
)

// LockoutError is returned when a login is refused because of too many
// failed attempts.
type LockoutError struct {
	RemainingMinutes int
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("%s for %d minutes", ErrAccountLocked, e.RemainingMinutes)
}

func (e *LockoutError) Is(target error) bool {
	return target == ErrAccountLocked
}
