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

type urlDB struct {
	ID          int64         `db:"id"`
	ShortCode   string        `db:"short_code"`
	OriginalURL string        `db:"original_url"`
	UserID      sql.NullInt64 `db:"user_id"`
	Clicks      int64         `db:"clicks"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

func (u *urlDB) toEntity() *entity.URL {
	return &entity.URL{
		ID:          u.ID,
		ShortCode:   u.ShortCode,
		OriginalURL: u.OriginalURL,
		UserID:      u.UserID.Int64,
		URLStats: entity.URLStats{
			Clicks: u.Clicks,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type searchResultDB struct {
	ShortCode   string `db:"short_code"`
	OriginalURL string `db:"original_url"`
	Clicks      int64  `db:"clicks"`
	UserID      int64  `db:"user_id"`
	Username    string `db:"username"`
}

type URLRepository struct {
	db *sqlx.DB
}

func NewURLRepository(db *sqlx.DB) *URLRepository {
	return &URLRepository{db: db}
}

func (r *URLRepository) Save(ctx context.Context, shortCode, originalURL string, userID int64) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.Save"
	const query = `INSERT INTO urls(short_code, original_url, user_id) VALUES ($1, $2, $3) RETURNING *`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, shortCode, originalURL, nullInt64(userID)); err != nil {
		if constraint, ok := postgres.UniqueViolation(err); ok && constraint == constraintShortCode {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrShortCodeExists)
		}

		return nil, fmt.Errorf("%s: failed to insert into urls table: %w: %w", op, entity.ErrStorage, err)
	}

	return url.toEntity(), nil
}

// RetrieveAndUpdateStats increments the click counter of the URL and returns
// the updated row in one statement.
func (r *URLRepository) RetrieveAndUpdateStats(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveAndUpdateStats"
	const query = `UPDATE urls SET clicks = clicks + 1 WHERE short_code = $1 RETURNING *`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, shortCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get and update urls table row: %w: %w", op, entity.ErrStorage, err)
	}

	return url.toEntity(), nil
}

func (r *URLRepository) RetrieveByUserID(ctx context.Context, userID int64) ([]entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveByUserID"
	const query = `SELECT * FROM urls WHERE user_id = $1 ORDER BY id`

	var rows []urlDB

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("%s: failed to select from urls table: %w: %w", op, entity.ErrStorage, err)
	}

	urls := make([]entity.URL, 0, len(rows))
	for i := range rows {
		urls = append(urls, *rows[i].toEntity())
	}

	return urls, nil
}

// RemoveForUser deletes the URL only when it is owned by userID.
func (r *URLRepository) RemoveForUser(ctx context.Context, shortCode string, userID int64) error {
	const op = "adapter.repository.postgres.URLRepository.RemoveForUser"
	const query = `DELETE FROM urls WHERE short_code = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, shortCode, userID)
	if err != nil {
		return fmt.Errorf("%s: failed to delete from urls table: %w: %w", op, entity.ErrStorage, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get number of affected rows: %w: %w", op, entity.ErrStorage, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%s: %w", op, entity.ErrURLNotFoundOrNotOwned)
	}

	return nil
}

// Search matches term case-insensitively against the original URL or the
// owner's username.
func (r *URLRepository) Search(ctx context.Context, term string) ([]entity.SearchResult, error) {
	const op = "adapter.repository.postgres.URLRepository.Search"
	const query = `SELECT urls.short_code, urls.original_url, urls.clicks, users.id AS user_id, users.username
		FROM urls
		JOIN users ON urls.user_id = users.id
		WHERE urls.original_url ILIKE $1 OR users.username ILIKE $1
		ORDER BY urls.id`

	var rows []searchResultDB

	if err := r.db.SelectContext(ctx, &rows, query, containsPattern(term)); err != nil {
		return nil, fmt.Errorf("%s: failed to search urls table: %w: %w", op, entity.ErrStorage, err)
	}

	results := make([]entity.SearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, entity.SearchResult(row))
	}

	return results, nil
}

func (r *URLRepository) StatsByUserID(ctx context.Context, userID int64) (*entity.UserStats, error) {
	const op = "adapter.repository.postgres.URLRepository.StatsByUserID"
	const query = `SELECT COUNT(*) AS urls, COALESCE(SUM(clicks), 0)::BIGINT AS clicks FROM urls WHERE user_id = $1`

	var stats struct {
		URLs   int64 `db:"urls"`
		Clicks int64 `db:"clicks"`
	}

	if err := r.db.GetContext(ctx, &stats, query, userID); err != nil {
		return nil, fmt.Errorf("%s: failed to aggregate urls table: %w: %w", op, entity.ErrStorage, err)
	}

	return &entity.UserStats{URLs: stats.URLs, Clicks: stats.Clicks}, nil
}
