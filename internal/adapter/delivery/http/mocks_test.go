package http

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, reg entity.Registration) (*entity.User, error) {
	args := m.Called(ctx, reg)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (*entity.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserUseCase) UpdateProfile(ctx context.Context, id int64, profile entity.Profile) (*entity.User, error) {
	args := m.Called(ctx, id, profile)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

type MockURLUseCase struct {
	mock.Mock
}

func (m *MockURLUseCase) ShortenURL(ctx context.Context, originalURL string, userID int64) (*entity.URL, error) {
	args := m.Called(ctx, originalURL, userID)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *MockURLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *MockURLUseCase) ListURLs(ctx context.Context, userID int64) ([]entity.URL, error) {
	args := m.Called(ctx, userID)
	urls, _ := args.Get(0).([]entity.URL)
	return urls, args.Error(1)
}

func (m *MockURLUseCase) DeleteURL(ctx context.Context, shortCode string, userID int64) error {
	args := m.Called(ctx, shortCode, userID)
	return args.Error(0)
}

func (m *MockURLUseCase) SearchURLs(ctx context.Context, term string) ([]entity.SearchResult, error) {
	args := m.Called(ctx, term)
	results, _ := args.Get(0).([]entity.SearchResult)
	return results, args.Error(1)
}

func (m *MockURLUseCase) GetUserStats(ctx context.Context, userID int64) (*entity.UserStats, error) {
	args := m.Called(ctx, userID)
	stats, _ := args.Get(0).(*entity.UserStats)
	return stats, args.Error(1)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) UserID(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
