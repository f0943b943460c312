// Package entity defines the entities and errors used in the application.
// It includes the URL and User structs along with the error values returned
// by the use cases and repositories.
package entity

import "time"

// URL represents a shortened URL.
type URL struct {
	ID          int64     // ID is the unique identifier of the URL in the database.
	ShortCode   string    // ShortCode is the generated code used to shorten the original URL.
	OriginalURL string    // OriginalURL is the full URL that the short code resolves to.
	UserID      int64     // UserID references the owner. Zero means the URL has no owner.
	URLStats              // URLStats contains statistics about the URL.
	CreatedAt   time.Time // CreatedAt is the timestamp when the URL was created.
	UpdatedAt   time.Time // UpdatedAt is the timestamp when the URL was last updated.
}

// URLStats contains statistics related to a shortened URL.
type URLStats struct {
	Clicks int64 // Clicks is the number of times the shortened URL has been resolved.
}

// SearchResult is a URL joined with the username of its owner.
type SearchResult struct {
	ShortCode   string
	OriginalURL string
	Clicks      int64
	UserID      int64
	Username    string
}

// UserStats aggregates the URLs of one owner.
type UserStats struct {
	URLs   int64 // URLs is the number of URLs the user owns.
	Clicks int64 // Clicks is the sum of clicks over those URLs.
}
