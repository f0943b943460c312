package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

const defaultMaxRetries = 10

type urlRepository interface {
	Save(ctx context.Context, shortCode, originalURL string, userID int64) (*entity.URL, error)
	RetrieveAndUpdateStats(ctx context.Context, shortCode string) (*entity.URL, error)
	RetrieveByUserID(ctx context.Context, userID int64) ([]entity.URL, error)
	RemoveForUser(ctx context.Context, shortCode string, userID int64) error
	Search(ctx context.Context, term string) ([]entity.SearchResult, error)
	StatsByUserID(ctx context.Context, userID int64) (*entity.UserStats, error)
}

type URLUseCase struct {
	urlRepo    urlRepository
	generate   func() (string, error)
	maxRetries int
	validate   *validator.Validate
}

type URLOption func(*URLUseCase)

// WithShortCodeGenerator replaces GenerateShortCode.
func WithShortCodeGenerator(generate func() (string, error)) URLOption {
	return func(uc *URLUseCase) {
		uc.generate = generate
	}
}

// WithMaxRetries bounds the number of short codes tried per URL.
func WithMaxRetries(n int) URLOption {
	return func(uc *URLUseCase) {
		if n > 0 {
			uc.maxRetries = n
		}
	}
}

func NewURLUseCase(urlRepo urlRepository, opts ...URLOption) *URLUseCase {
	uc := &URLUseCase{
		urlRepo:    urlRepo,
		generate:   GenerateShortCode,
		maxRetries: defaultMaxRetries,
		validate:   validator.New(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

func (uc *URLUseCase) validateURL(originalURL string) error {
	if err := uc.validate.Var(originalURL, "required,url"); err != nil {
		return entity.ErrInvalidURL
	}

	u, err := url.Parse(originalURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return entity.ErrInvalidURL
	}

	return nil
}

// ShortenURL stores originalURL under a fresh short code owned by userID.
// A colliding short code is replaced by a new one until maxRetries is reached.
func (uc *URLUseCase) ShortenURL(ctx context.Context, originalURL string, userID int64) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ShortenURL"

	if err := uc.validateURL(originalURL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := 0; i < uc.maxRetries; i++ {
		shortCode, err := uc.generate()
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		url, err := uc.urlRepo.Save(ctx, shortCode, originalURL, userID)
		if err != nil {
			if errors.Is(err, entity.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, entity.ErrMaxRetriesExceeded)
}

// ResolveShortCode returns the URL stored under shortCode and counts the visit.
func (uc *URLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ResolveShortCode"

	url, err := uc.urlRepo.RetrieveAndUpdateStats(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return url, nil
}

func (uc *URLUseCase) ListURLs(ctx context.Context, userID int64) ([]entity.URL, error) {
	const op = "usecase.URLUseCase.ListURLs"

	urls, err := uc.urlRepo.RetrieveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list urls: %w", op, err)
	}

	return urls, nil
}

// DeleteURL removes the URL if userID owns it. A missing URL and a URL owned
// by someone else both yield entity.ErrURLNotFoundOrNotOwned.
func (uc *URLUseCase) DeleteURL(ctx context.Context, shortCode string, userID int64) error {
	const op = "usecase.URLUseCase.DeleteURL"

	if err := uc.urlRepo.RemoveForUser(ctx, shortCode, userID); err != nil {
		return fmt.Errorf("%s: failed to delete url: %w", op, err)
	}

	return nil
}

func (uc *URLUseCase) SearchURLs(ctx context.Context, term string) ([]entity.SearchResult, error) {
	const op = "usecase.URLUseCase.SearchURLs"

	results, err := uc.urlRepo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to search urls: %w", op, err)
	}

	return results, nil
}

func (uc *URLUseCase) GetUserStats(ctx context.Context, userID int64) (*entity.UserStats, error) {
	const op = "usecase.URLUseCase.GetUserStats"

	stats, err := uc.urlRepo.StatsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get user stats: %w", op, err)
	}

	return stats, nil
}
