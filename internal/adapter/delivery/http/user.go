package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type userHandler struct {
	userUseCase userUseCase
	urlUseCase  urlUseCase
	validate    *validator.Validate
}

func newUserHandler(userUseCase userUseCase, urlUseCase urlUseCase, validate *validator.Validate) *userHandler {
	return &userHandler{
		userUseCase: userUseCase,
		urlUseCase:  urlUseCase,
		validate:    validate,
	}
}

func (h *userHandler) getMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	user, err := h.userUseCase.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			respondError(w, r, http.StatusNotFound, userNotFoundResponse)
			return
		}

		serverError(w, r, err)
		return
	}

	stats, err := h.urlUseCase.GetUserStats(r.Context(), userID)
	if err != nil {
		serverError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, meResponse{
		userResponse: toUserResponse(user),
		Stats: userStatsResponse{
			URLs:   stats.URLs,
			Clicks: stats.Clicks,
		},
	})
}

func (h *userHandler) updateMe(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	userID, _ := userIDFromContext(r.Context())

	user, err := h.userUseCase.UpdateProfile(r.Context(), userID, req.toEntity())
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrEmailExists):
			respondError(w, r, http.StatusConflict, emailExistsResponse)
		case errors.Is(err, entity.ErrUserNotFound):
			respondError(w, r, http.StatusNotFound, userNotFoundResponse)
		default:
			serverError(w, r, err)
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toUserResponse(user))
}

func (h *userHandler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		respondError(w, r, http.StatusNotFound, userNotFoundResponse)
		return
	}

	user, err := h.userUseCase.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			respondError(w, r, http.StatusNotFound, userNotFoundResponse)
			return
		}

		serverError(w, r, err)
		return
	}

	urls, err := h.urlUseCase.ListURLs(r.Context(), userID)
	if err != nil {
		serverError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toPublicUserResponse(user, urls))
}
