package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/shortlinks/internal/adapter/repository/postgres"
	"github.com/vadimbarashkov/shortlinks/internal/config"
	"github.com/vadimbarashkov/shortlinks/internal/usecase"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/shortlinks/internal/adapter/delivery/http"
	session "github.com/vadimbarashkov/shortlinks/internal/adapter/session/redis"
	pgconn "github.com/vadimbarashkov/shortlinks/pkg/postgres"
)

const serviceName = "shortlinks"

func newLogger(cfg *config.Config) *httplog.Logger {
	return httplog.NewLogger(serviceName, httplog.Options{
		JSON:     cfg.Env == config.EnvProd,
		LogLevel: cfg.SlogLevel(),
		Concise:  cfg.Env == config.EnvDev,
		Tags: map[string]string{
			"env": cfg.Env,
		},
	})
}

func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	logger := newLogger(cfg)

	db, err := pgconn.New(
		ctx,
		cfg.Postgres.DSN(),
		pgconn.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		pgconn.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		pgconn.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		pgconn.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	if err := pgconn.RunMigrations(cfg.Postgres.MigrationsPath, cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	rdb, err := session.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to redis: %w", op, err)
	}
	defer rdb.Close()

	urlRepo := postgres.NewURLRepository(db)
	userRepo := postgres.NewUserRepository(db)
	sessions := session.NewStore(rdb, cfg.Session.TTL)

	urlUseCase := usecase.NewURLUseCase(urlRepo, usecase.WithMaxRetries(cfg.Shortener.MaxRetries))
	userUseCase := usecase.NewUserUseCase(userRepo)
	authUseCase := usecase.NewAuthUseCase(
		userRepo,
		usecase.WithBcryptCost(cfg.Security.BcryptCost),
		usecase.WithLockoutPolicy(usecase.LockoutPolicy{
			MaxFailedAttempts: cfg.Security.MaxFailedAttempts,
			Window:            cfg.Security.LockoutWindow,
		}),
		usecase.WithLogger(logger.Logger),
	)

	r := delivery.NewRouter(logger, sessions, authUseCase, userUseCase, urlUseCase)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        r,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		logger.Info("starting server", slog.String("addr", server.Addr), slog.String("env", cfg.Env))

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
