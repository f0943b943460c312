package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type urlHandler struct {
	useCase  urlUseCase
	validate *validator.Validate
}

func newURLHandler(useCase urlUseCase, validate *validator.Validate) *urlHandler {
	return &urlHandler{
		useCase:  useCase,
		validate: validate,
	}
}

func (h *urlHandler) shortenURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	userID, _ := userIDFromContext(r.Context())

	url, err := h.useCase.ShortenURL(r.Context(), req.OriginalURL, userID)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidURL) {
			respondError(w, r, http.StatusBadRequest, invalidURLResponse)
			return
		}

		serverError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toURLResponse(url))
}

func (h *urlHandler) listURLs(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	urls, err := h.useCase.ListURLs(r.Context(), userID)
	if err != nil {
		serverError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLResponses(urls))
}

func (h *urlHandler) deleteURL(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")
	userID, _ := userIDFromContext(r.Context())

	err := h.useCase.DeleteURL(r.Context(), shortCode, userID)
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFoundOrNotOwned) {
			respondError(w, r, http.StatusNotFound, urlNotFoundResponse)
			return
		}

		serverError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *urlHandler) searchURLs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	if err := h.validate.Var(q, searchQueryRules); err != nil {
		respondError(w, r, http.StatusBadRequest, validationErrorResponse(err, "q"))
		return
	}

	results, err := h.useCase.SearchURLs(r.Context(), q)
	if err != nil {
		serverError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toSearchResultResponses(results))
}
