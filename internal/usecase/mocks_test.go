package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type MockURLRepository struct {
	mock.Mock
}

func (r *MockURLRepository) Save(ctx context.Context, shortCode, originalURL string, userID int64) (*entity.URL, error) {
	args := r.Called(ctx, shortCode, originalURL, userID)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (r *MockURLRepository) RetrieveAndUpdateStats(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := r.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (r *MockURLRepository) RetrieveByUserID(ctx context.Context, userID int64) ([]entity.URL, error) {
	args := r.Called(ctx, userID)
	urls, _ := args.Get(0).([]entity.URL)
	return urls, args.Error(1)
}

func (r *MockURLRepository) RemoveForUser(ctx context.Context, shortCode string, userID int64) error {
	args := r.Called(ctx, shortCode, userID)
	return args.Error(0)
}

func (r *MockURLRepository) Search(ctx context.Context, term string) ([]entity.SearchResult, error) {
	args := r.Called(ctx, term)
	results, _ := args.Get(0).([]entity.SearchResult)
	return results, args.Error(1)
}

func (r *MockURLRepository) StatsByUserID(ctx context.Context, userID int64) (*entity.UserStats, error) {
	args := r.Called(ctx, userID)
	stats, _ := args.Get(0).(*entity.UserStats)
	return stats, args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (r *MockUserRepository) Save(ctx context.Context, user *entity.User) (*entity.User, error) {
	args := r.Called(ctx, user)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (r *MockUserRepository) RetrieveByID(ctx context.Context, id int64) (*entity.User, error) {
	args := r.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (r *MockUserRepository) RetrieveByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := r.Called(ctx, username)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (r *MockUserRepository) RecordLoginSuccess(ctx context.Context, id int64, at time.Time) error {
	args := r.Called(ctx, id, at)
	return args.Error(0)
}

func (r *MockUserRepository) RecordLoginFailure(ctx context.Context, id int64, at time.Time) error {
	args := r.Called(ctx, id, at)
	return args.Error(0)
}

func (r *MockUserRepository) UpdateProfile(ctx context.Context, id int64, profile entity.Profile) (*entity.User, error) {
	args := r.Called(ctx, id, profile)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}
