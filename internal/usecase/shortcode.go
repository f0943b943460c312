package usecase

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	// ShortCodeAlphabet is the set of characters short codes are drawn from.
	ShortCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// ShortCodeLength is the fixed length of every short code.
	ShortCodeLength = 6
)

// GenerateShortCode returns a random short code. Every character is picked
// independently and uniformly from ShortCodeAlphabet. Uniqueness is not
// guaranteed; callers retry on collision.
func GenerateShortCode() (string, error) {
	return gonanoid.Generate(ShortCodeAlphabet, ShortCodeLength)
}
