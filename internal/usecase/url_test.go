package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

// sequence returns a generator yielding codes in order.
func sequence(codes ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		code := codes[i%len(codes)]
		i++
		return code, nil
	}
}

type URLUseCaseTestSuite struct {
	suite.Suite
	errUnknown  error
	urlRepoMock *MockURLRepository
	uc          *URLUseCase
}

func (suite *URLUseCaseTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
}

func (suite *URLUseCaseTestSuite) SetupSubTest() {
	suite.urlRepoMock = new(MockURLRepository)
	suite.uc = NewURLUseCase(suite.urlRepoMock, WithShortCodeGenerator(sequence("abc123", "def456")))
}

func (suite *URLUseCaseTestSuite) TearDownSubTest() {
	suite.urlRepoMock.AssertExpectations(suite.T())
}

func (suite *URLUseCaseTestSuite) TestShortenURL() {
	suite.Run("invalid url", func() {
		for _, rawURL := range []string{"", "not url", "example.com", "javascript:alert(1)", "ftp://example.com"} {
			url, err := suite.uc.ShortenURL(context.Background(), rawURL, 1)

			suite.ErrorIs(err, entity.ErrInvalidURL, rawURL)
			suite.Nil(url)
		}
	})

	suite.Run("short code generation error", func() {
		errGenerate := errors.New("entropy exhausted")
		suite.uc.generate = func() (string, error) {
			return "", errGenerate
		}

		url, err := suite.uc.ShortenURL(context.Background(), "https://example.com", 1)

		suite.Error(err)
		suite.ErrorIs(err, errGenerate)
		suite.Nil(url)
	})

	suite.Run("maximum retries error", func() {
		suite.uc.maxRetries = 3
		suite.urlRepoMock.
			On("Save", context.Background(), mock.Anything, "https://example.com", int64(1)).
			Times(3).
			Return(nil, entity.ErrShortCodeExists)

		url, err := suite.uc.ShortenURL(context.Background(), "https://example.com", 1)

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrMaxRetriesExceeded)
		suite.Nil(url)
	})

	suite.Run("retries with a fresh short code", func() {
		suite.urlRepoMock.
			On("Save", context.Background(), "abc123", "https://example.com", int64(1)).
			Once().
			Return(nil, entity.ErrShortCodeExists)
		suite.urlRepoMock.
			On("Save", context.Background(), "def456", "https://example.com", int64(1)).
			Once().
			Return(&entity.URL{
				ShortCode:   "def456",
				OriginalURL: "https://example.com",
				UserID:      1,
			}, nil)

		url, err := suite.uc.ShortenURL(context.Background(), "https://example.com", 1)

		suite.NoError(err)
		suite.Equal("def456", url.ShortCode)
	})

	suite.Run("unknown error", func() {
		suite.urlRepoMock.
			On("Save", context.Background(), "abc123", "https://example.com", int64(1)).
			Once().
			Return(nil, suite.errUnknown)

		url, err := suite.uc.ShortenURL(context.Background(), "https://example.com", 1)

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(url)
	})

	suite.Run("success", func() {
		suite.urlRepoMock.
			On("Save", context.Background(), "abc123", "https://example.com/path?q=1", int64(1)).
			Once().
			Return(&entity.URL{
				ShortCode:   "abc123",
				OriginalURL: "https://example.com/path?q=1",
				UserID:      1,
			}, nil)

		url, err := suite.uc.ShortenURL(context.Background(), "https://example.com/path?q=1", 1)

		suite.NoError(err)
		suite.NotNil(url)
		suite.Equal("abc123", url.ShortCode)
		suite.Equal("https://example.com/path?q=1", url.OriginalURL)
		suite.Equal(int64(1), url.UserID)
		suite.Zero(url.Clicks)
	})
}

func (suite *URLUseCaseTestSuite) TestResolveShortCode() {
	suite.Run("url not found", func() {
		suite.urlRepoMock.
			On("RetrieveAndUpdateStats", context.Background(), "abc123").
			Once().
			Return(nil, entity.ErrURLNotFound)

		url, err := suite.uc.ResolveShortCode(context.Background(), "abc123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Nil(url)
	})

	suite.Run("success", func() {
		suite.urlRepoMock.
			On("RetrieveAndUpdateStats", context.Background(), "abc123").
			Once().
			Return(&entity.URL{
				ShortCode:   "abc123",
				OriginalURL: "https://example.com",
				URLStats:    entity.URLStats{Clicks: 1},
			}, nil)

		url, err := suite.uc.ResolveShortCode(context.Background(), "abc123")

		suite.NoError(err)
		suite.Equal("https://example.com", url.OriginalURL)
		suite.Equal(int64(1), url.Clicks)
	})
}

func (suite *URLUseCaseTestSuite) TestListURLs() {
	suite.Run("unknown error", func() {
		suite.urlRepoMock.
			On("RetrieveByUserID", context.Background(), int64(1)).
			Once().
			Return(nil, suite.errUnknown)

		urls, err := suite.uc.ListURLs(context.Background(), 1)

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(urls)
	})

	suite.Run("success", func() {
		suite.urlRepoMock.
			On("RetrieveByUserID", context.Background(), int64(1)).
			Once().
			Return([]entity.URL{{ShortCode: "abc123"}, {ShortCode: "def456"}}, nil)

		urls, err := suite.uc.ListURLs(context.Background(), 1)

		suite.NoError(err)
		suite.Len(urls, 2)
	})
}

func (suite *URLUseCaseTestSuite) TestDeleteURL() {
	suite.Run("not found or not owned", func() {
		suite.urlRepoMock.
			On("RemoveForUser", context.Background(), "abc123", int64(2)).
			Once().
			Return(entity.ErrURLNotFoundOrNotOwned)

		err := suite.uc.DeleteURL(context.Background(), "abc123", 2)

		suite.ErrorIs(err, entity.ErrURLNotFoundOrNotOwned)
	})

	suite.Run("success", func() {
		suite.urlRepoMock.
			On("RemoveForUser", context.Background(), "abc123", int64(1)).
			Once().
			Return(nil)

		err := suite.uc.DeleteURL(context.Background(), "abc123", 1)

		suite.NoError(err)
	})
}

func (suite *URLUseCaseTestSuite) TestSearchURLs() {
	suite.Run("unknown error", func() {
		suite.urlRepoMock.
			On("Search", context.Background(), "example").
			Once().
			Return(nil, suite.errUnknown)

		results, err := suite.uc.SearchURLs(context.Background(), "example")

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(results)
	})

	suite.Run("success", func() {
		suite.urlRepoMock.
			On("Search", context.Background(), "alice").
			Once().
			Return([]entity.SearchResult{{ShortCode: "abc123", Username: "alice"}}, nil)

		results, err := suite.uc.SearchURLs(context.Background(), "alice")

		suite.NoError(err)
		suite.Len(results, 1)
		suite.Equal("alice", results[0].Username)
	})
}

func (suite *URLUseCaseTestSuite) TestGetUserStats() {
	suite.Run("unknown error", func() {
		suite.urlRepoMock.
			On("StatsByUserID", context.Background(), int64(1)).
			Once().
			Return(nil, suite.errUnknown)

		stats, err := suite.uc.GetUserStats(context.Background(), 1)

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(stats)
	})

	suite.Run("success", func() {
		suite.urlRepoMock.
			On("StatsByUserID", context.Background(), int64(1)).
			Once().
			Return(&entity.UserStats{URLs: 2, Clicks: 10}, nil)

		stats, err := suite.uc.GetUserStats(context.Background(), 1)

		suite.NoError(err)
		suite.Equal(int64(10), stats.Clicks)
	})
}

func TestURLUseCase(t *testing.T) {
	suite.Run(t, new(URLUseCaseTestSuite))
}
