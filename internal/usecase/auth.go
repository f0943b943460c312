package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/vadimbarashkov/shortlinks/internal/entity"
	"golang.org/x/crypto/bcrypt"
)

type userRepository interface {
	Save(ctx context.Context, user *entity.User) (*entity.User, error)
	RetrieveByID(ctx context.Context, id int64) (*entity.User, error)
	RetrieveByUsername(ctx context.Context, username string) (*entity.User, error)
	RecordLoginSuccess(ctx context.Context, id int64, at time.Time) error
	RecordLoginFailure(ctx context.Context, id int64, at time.Time) error
	UpdateProfile(ctx context.Context, id int64, profile entity.Profile) (*entity.User, error)
}

// LockoutPolicy decides when repeated login failures lock an account.
type LockoutPolicy struct {
	// MaxFailedAttempts is the number of failures after which the account locks.
	MaxFailedAttempts int
	// Window is measured from the most recent recorded failure. Attempts
	// made while locked are not recorded.
	Window time.Duration
}

var DefaultLockoutPolicy = LockoutPolicy{
	MaxFailedAttempts: 5,
	Window:            30 * time.Minute,
}

// Check reports whether user is locked at now and for how long.
func (p LockoutPolicy) Check(user *entity.User, now time.Time) (time.Duration, bool) {
	if user.FailedLoginAttempts < p.MaxFailedAttempts || user.LastFailedLoginAt == nil {
		return 0, false
	}

	until := user.LastFailedLoginAt.Add(p.Window)
	if !now.Before(until) {
		return 0, false
	}

	return until.Sub(now), true
}

func remainingMinutes(d time.Duration) int {
	return int(math.Ceil(d.Minutes()))
}

type AuthUseCase struct {
	userRepo   userRepository
	policy     LockoutPolicy
	bcryptCost int
	now        func() time.Time
	logger     *slog.Logger
}

type AuthOption func(*AuthUseCase)

func WithLockoutPolicy(policy LockoutPolicy) AuthOption {
	return func(uc *AuthUseCase) {
		uc.policy = policy
	}
}

func WithBcryptCost(cost int) AuthOption {
	return func(uc *AuthUseCase) {
		uc.bcryptCost = cost
	}
}

// WithClock replaces time.Now as the source of attempt timestamps.
func WithClock(now func() time.Time) AuthOption {
	return func(uc *AuthUseCase) {
		uc.now = now
	}
}

func WithLogger(logger *slog.Logger) AuthOption {
	return func(uc *AuthUseCase) {
		uc.logger = logger
	}
}

func NewAuthUseCase(userRepo userRepository, opts ...AuthOption) *AuthUseCase {
	uc := &AuthUseCase{
		userRepo:   userRepo,
		policy:     DefaultLockoutPolicy,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Register hashes the password and stores a new user.
func (uc *AuthUseCase) Register(ctx context.Context, reg entity.Registration) (*entity.User, error) {
	const op = "usecase.AuthUseCase.Register"

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := uc.userRepo.Save(ctx, &entity.User{
		Username:     reg.Username,
		PasswordHash: string(hash),
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		Phone:        reg.Phone,
		Website:      reg.Website,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to register user: %w", op, err)
	}

	uc.logger.Info("user registered", slog.Int64("user_id", user.ID))

	return user, nil
}

// Login verifies the credentials of username.
//
// A locked account is rejected with *entity.LockoutError before the password
// is compared, and nothing is recorded. Otherwise a match resets the failure
// counter and a mismatch increments it.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*entity.User, error) {
	const op = "usecase.AuthUseCase.Login"

	now := uc.now()

	user, err := uc.userRepo.RetrieveByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to retrieve user: %w", op, err)
	}

	if remaining, locked := uc.policy.Check(user, now); locked {
		uc.logger.Warn("login refused for locked account",
			slog.Int64("user_id", user.ID),
			slog.Duration("remaining", remaining),
		)

		return nil, fmt.Errorf("%s: %w", op, &entity.LockoutError{RemainingMinutes: remainingMinutes(remaining)})
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, fmt.Errorf("%s: failed to compare password: %w", op, err)
		}

		if err := uc.userRepo.RecordLoginFailure(ctx, user.ID, now); err != nil {
			return nil, fmt.Errorf("%s: failed to record login failure: %w", op, err)
		}

		uc.logger.Info("login failed",
			slog.Int64("user_id", user.ID),
			slog.Int("failed_attempts", user.FailedLoginAttempts+1),
		)

		return nil, fmt.Errorf("%s: %w", op, entity.ErrInvalidCredentials)
	}

	if err := uc.userRepo.RecordLoginSuccess(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("%s: failed to record login success: %w", op, err)
	}

	user.LastLoginAt = &now
	user.FailedLoginAttempts = 0

	return user, nil
}
