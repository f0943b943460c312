package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
	"github.com/vadimbarashkov/shortlinks/pkg/postgres"
)

type userDB struct {
	ID                  int64          `db:"id"`
	Username            string         `db:"username"`
	PasswordHash        string         `db:"password_hash"`
	FirstName           string         `db:"first_name"`
	LastName            string         `db:"last_name"`
	Email               string         `db:"email"`
	Phone               sql.NullString `db:"phone"`
	Website             sql.NullString `db:"website"`
	LastLoginAt         sql.NullTime   `db:"last_login_at"`
	LastFailedLoginAt   sql.NullTime   `db:"last_failed_login_at"`
	FailedLoginAttempts int            `db:"failed_login_attempts"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

func (u *userDB) toEntity() *entity.User {
	return &entity.User{
		ID:                  u.ID,
		Username:            u.Username,
		PasswordHash:        u.PasswordHash,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Email:               u.Email,
		Phone:               u.Phone.String,
		Website:             u.Website.String,
		LastLoginAt:         timePtr(u.LastLoginAt),
		LastFailedLoginAt:   timePtr(u.LastFailedLoginAt),
		FailedLoginAttempts: u.FailedLoginAttempts,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

// uniqueUserError maps a violated users constraint to its domain error.
func uniqueUserError(err error) error {
	constraint, ok := postgres.UniqueViolation(err)
	if !ok {
		return nil
	}

	switch constraint {
	case constraintUsername:
		return entity.ErrUsernameExists
	case constraintEmail:
		return entity.ErrEmailExists
	default:
		return nil
	}
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, user *entity.User) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.Save"
	const query = `INSERT INTO users(username, password_hash, first_name, last_name, email, phone, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *`

	var rec userDB

	err := r.db.GetContext(ctx, &rec, query,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Email,
		nullString(user.Phone),
		nullString(user.Website),
	)
	if err != nil {
		if domainErr := uniqueUserError(err); domainErr != nil {
			return nil, fmt.Errorf("%s: %w", op, domainErr)
		}

		return nil, fmt.Errorf("%s: failed to insert into users table: %w: %w", op, entity.ErrStorage, err)
	}

	return rec.toEntity(), nil
}

func (r *UserRepository) RetrieveByID(ctx context.Context, id int64) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.RetrieveByID"
	const query = `SELECT * FROM users WHERE id = $1`

	var rec userDB

	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from users table: %w: %w", op, entity.ErrStorage, err)
	}

	return rec.toEntity(), nil
}

func (r *UserRepository) RetrieveByUsername(ctx context.Context, username string) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.RetrieveByUsername"
	const query = `SELECT * FROM users WHERE username = $1`

	var rec userDB

	if err := r.db.GetContext(ctx, &rec, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from users table: %w: %w", op, entity.ErrStorage, err)
	}

	return rec.toEntity(), nil
}

// RecordLoginSuccess stores the login time and resets the failure counter.
func (r *UserRepository) RecordLoginSuccess(ctx context.Context, id int64, at time.Time) error {
	const op = "adapter.repository.postgres.UserRepository.RecordLoginSuccess"
	const query = `UPDATE users SET last_login_at = $1, failed_login_attempts = 0 WHERE id = $2`

	return r.execForUser(ctx, op, query, at, id)
}

// RecordLoginFailure stores the failure time and increments the failure counter.
func (r *UserRepository) RecordLoginFailure(ctx context.Context, id int64, at time.Time) error {
	const op = "adapter.repository.postgres.UserRepository.RecordLoginFailure"
	const query = `UPDATE users
		SET last_failed_login_at = $1, failed_login_attempts = failed_login_attempts + 1
		WHERE id = $2`

	return r.execForUser(ctx, op, query, at, id)
}

func (r *UserRepository) execForUser(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to update users table: %w: %w", op, entity.ErrStorage, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get number of affected rows: %w: %w", op, entity.ErrStorage, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
	}

	return nil
}

// UpdateProfile overwrites the editable fields. Password and id are never touched.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, profile entity.Profile) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.UpdateProfile"
	const query = `UPDATE users
		SET first_name = $1, last_name = $2, email = $3, phone = $4, website = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING *`

	var rec userDB

	err := r.db.GetContext(ctx, &rec, query,
		profile.FirstName,
		profile.LastName,
		profile.Email,
		nullString(profile.Phone),
		nullString(profile.Website),
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}
		if domainErr := uniqueUserError(err); domainErr != nil {
			return nil, fmt.Errorf("%s: %w", op, domainErr)
		}

		return nil, fmt.Errorf("%s: failed to update users table row: %w: %w", op, entity.ErrStorage, err)
	}

	return rec.toEntity(), nil
}
