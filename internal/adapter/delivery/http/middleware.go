package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type ctxKey int

const userIDKey ctxKey = iota

func userIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "

	h := r.Header.Get("Authorization")
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}

	return strings.TrimSpace(h[len(prefix):]), true
}

// requireAuth rejects requests without a live session and stores the
// session's user id in the request context.
func requireAuth(sessions sessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				respondError(w, r, http.StatusUnauthorized, unauthorizedResponse)
				return
			}

			userID, err := sessions.UserID(r.Context(), token)
			if err != nil {
				if errors.Is(err, entity.ErrSessionNotFound) {
					respondError(w, r, http.StatusUnauthorized, unauthorizedResponse)
					return
				}

				serverError(w, r, err)
				return
			}

			httplog.LogEntrySetField(r.Context(), "user_id", slog.Int64Value(userID))

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
