// Package http provides the HTTP delivery layer of the link shortener.
// It contains the router, the JSON handlers for accounts and links, the
// session middleware and the redirect endpoint.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes a chi router with middleware and the API routes.
func NewRouter(
	logger *httplog.Logger,
	sessions sessionStore,
	authUseCase authUseCase,
	userUseCase userUseCase,
	urlUseCase urlUseCase,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	validate := newValidator()
	auth := newAuthHandler(authUseCase, sessions, validate)
	users := newUserHandler(userUseCase, urlUseCase, validate)
	urls := newURLHandler(urlUseCase, validate)
	redirects := &redirectHandler{useCase: urlUseCase}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", auth.register)
			r.Post("/login", auth.login)
			r.With(requireAuth(sessions)).Post("/logout", auth.logout)
		})

		r.Get("/users/{userID}", users.getUser)
		r.Get("/search", urls.searchURLs)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth(sessions))

			r.Get("/me", users.getMe)
			r.Put("/me", users.updateMe)

			r.Route("/urls", func(r chi.Router) {
				r.Post("/", urls.shortenURL)
				r.Get("/", urls.listURLs)
				r.Delete("/{shortCode}", urls.deleteURL)
			})
		})
	})

	r.Get("/{shortCode:[a-z0-9]{6}}", redirects.redirect)

	return r
}
