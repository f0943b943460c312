// Package redis keeps login sessions in Redis as expiring token keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vadimbarashkov/shortlinks/internal/config"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

const keyPrefix = "session:"

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	const op = "session.redis.New"

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: failed to ping redis: %w", op, err)
	}

	return client, nil
}

func sessionKey(token string) string {
	return keyPrefix + token
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Create issues a new random token bound to userID.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	const op = "session.redis.Store.Create"

	token := uuid.NewString()

	if err := s.client.Set(ctx, sessionKey(token), userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%s: failed to save session: %w: %w", op, entity.ErrStorage, err)
	}

	return token, nil
}

// UserID resolves token to the user it was issued for.
func (s *Store) UserID(ctx context.Context, token string) (int64, error) {
	const op = "session.redis.Store.UserID"

	if _, err := uuid.Parse(token); err != nil {
		return 0, fmt.Errorf("%s: %w", op, entity.ErrSessionNotFound)
	}

	val, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, fmt.Errorf("%s: %w", op, entity.ErrSessionNotFound)
		}
		return 0, fmt.Errorf("%s: failed to get session: %w: %w", op, entity.ErrStorage, err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: malformed session value: %w: %w", op, entity.ErrStorage, err)
	}

	return userID, nil
}

// Delete removes the session. Unknown tokens are ignored.
func (s *Store) Delete(ctx context.Context, token string) error {
	const op = "session.redis.Store.Delete"

	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("%s: failed to delete session: %w: %w", op, entity.ErrStorage, err)
	}

	return nil
}
