// Package postgres implements the URL and user repositories on top of sqlx.
// Every counter mutation is a single UPDATE statement so that concurrent
// callers never lose an increment.
package postgres

import (
	"database/sql"
	"strings"
	"time"
)

const (
	constraintUsername  = "users_username_key"
	constraintEmail     = "users_email_key"
	constraintShortCode = "urls_short_code_key"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere in a string.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
