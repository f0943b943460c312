package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type authHandler struct {
	useCase  authUseCase
	sessions sessionStore
	validate *validator.Validate
}

func newAuthHandler(useCase authUseCase, sessions sessionStore, validate *validator.Validate) *authHandler {
	return &authHandler{
		useCase:  useCase,
		sessions: sessions,
		validate: validate,
	}
}

func (h *authHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	user, err := h.useCase.Register(r.Context(), req.toEntity())
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrUsernameExists):
			respondError(w, r, http.StatusConflict, usernameExistsResponse)
		case errors.Is(err, entity.ErrEmailExists):
			respondError(w, r, http.StatusConflict, emailExistsResponse)
		default:
			serverError(w, r, err)
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toUserResponse(user))
}

func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	user, err := h.useCase.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		var lockoutErr *entity.LockoutError

		switch {
		case errors.As(err, &lockoutErr):
			respondError(w, r, http.StatusLocked, accountLockedResponse(lockoutErr.RemainingMinutes))
		case errors.Is(err, entity.ErrUserNotFound):
			respondError(w, r, http.StatusNotFound, userNotFoundResponse)
		case errors.Is(err, entity.ErrInvalidCredentials):
			respondError(w, r, http.StatusUnauthorized, invalidCredentialsResponse)
		default:
			serverError(w, r, err)
		}
		return
	}

	token, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}

	httplog.LogEntrySetField(r.Context(), "user_id", slog.Int64Value(user.ID))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, loginResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

func (h *authHandler) logout(w http.ResponseWriter, r *http.Request) {
	token, _ := bearerToken(r)

	if err := h.sessions.Delete(r.Context(), token); err != nil {
		serverError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
