package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type authUseCase interface {
	Register(ctx context.Context, reg entity.Registration) (*entity.User, error)
	Login(ctx context.Context, username, password string) (*entity.User, error)
}

type userUseCase interface {
	GetUser(ctx context.Context, id int64) (*entity.User, error)
	UpdateProfile(ctx context.Context, id int64, profile entity.Profile) (*entity.User, error)
}

type urlUseCase interface {
	ShortenURL(ctx context.Context, originalURL string, userID int64) (*entity.URL, error)
	ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	ListURLs(ctx context.Context, userID int64) ([]entity.URL, error)
	DeleteURL(ctx context.Context, shortCode string, userID int64) error
	SearchURLs(ctx context.Context, term string) ([]entity.SearchResult, error)
	GetUserStats(ctx context.Context, userID int64) (*entity.UserStats, error)
}

type sessionStore interface {
	Create(ctx context.Context, userID int64) (string, error)
	UserID(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

func respondError(w http.ResponseWriter, r *http.Request, status int, resp errorResponse) {
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// serverError attaches err to the request log entry and hides it from the client.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
	respondError(w, r, http.StatusInternalServerError, serverErrorResponse)
}

// decodeAndValidate reads a JSON body into v and validates it. It writes the
// error response itself and reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			respondError(w, r, http.StatusBadRequest, emptyRequestBodyResponse)
			return false
		}

		respondError(w, r, http.StatusBadRequest, invalidRequestBodyResponse)
		return false
	}

	if err := validate.Struct(v); err != nil {
		respondError(w, r, http.StatusBadRequest, validationErrorResponse(err, ""))
		return false
	}

	return true
}

type redirectHandler struct {
	useCase urlUseCase
}

func (h *redirectHandler) redirect(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	url, err := h.useCase.ResolveShortCode(r.Context(), shortCode)
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			respondError(w, r, http.StatusNotFound, urlNotFoundResponse)
			return
		}

		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, url.OriginalURL, http.StatusFound)
}
