// Package server собирает HTTP сервер документов: маршруты, middleware
// и фоновые задачи.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/lifetracker/internal/config"
	"github.com/iudanet/lifetracker/internal/server/handlers"
	"github.com/iudanet/lifetracker/internal/server/hub"
	"github.com/iudanet/lifetracker/internal/server/middleware"
	"github.com/iudanet/lifetracker/internal/server/storage"
	"github.com/iudanet/lifetracker/internal/server/storage/sqlite"
)

const (
	shutdownTimeout      = 10 * time.Second
	tokenCleanupInterval = time.Hour
)

// Store объединяет все хранилища сервера
type Store interface {
	storage.UserStorage
	storage.TokenStorage
	storage.DocumentStorage
	handlers.Pinger
}

// NewRouter wires handlers and middleware into one http.Handler.
func NewRouter(cfg *config.Server, store Store, h *hub.Hub, version string, logger *slog.Logger) http.Handler {
	jwtConfig := handlers.JWTConfig{
		Secret:          []byte(cfg.JWTSecret),
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	}

	authHandler := handlers.NewAuthHandler(logger, store, store, jwtConfig)
	documentHandler := handlers.NewDocumentHandler(logger, store, h)
	healthHandler := handlers.NewHealthHandler(logger, version, store)

	limited := middleware.RateLimitMiddleware(cfg.AuthRateLimit, cfg.AuthRateWindow, logger)
	authenticated := middleware.AuthMiddleware(logger, jwtConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("POST /api/v1/auth/register", limited(http.HandlerFunc(authHandler.Register)))
	mux.Handle("GET /api/v1/auth/salt/{username}", limited(http.HandlerFunc(authHandler.GetSalt)))
	mux.Handle("POST /api/v1/auth/login", limited(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/v1/auth/refresh", limited(http.HandlerFunc(authHandler.Refresh)))
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)

	mux.Handle("GET /api/v1/users/{uid}/lifeTracker/state", authenticated(http.HandlerFunc(documentHandler.Get)))
	mux.Handle("PATCH /api/v1/users/{uid}/lifeTracker/state", authenticated(http.HandlerFunc(documentHandler.Merge)))
	mux.Handle("GET /api/v1/users/{uid}/lifeTracker/state/subscribe", authenticated(http.HandlerFunc(documentHandler.Subscribe)))

	handler := middleware.RecoveryMiddleware(logger)(mux)
	return middleware.LoggingWithSkip(logger, []string{"/api/v1/health", "/metrics"})(handler)
}

// Run opens the database, serves HTTP on cfg.Listen and blocks until ctx
// is cancelled or the listener fails.
func Run(ctx context.Context, cfg *config.Server, version string, logger *slog.Logger) error {
	store, err := sqlite.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	listener, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Listen, err)
	}

	return Serve(ctx, listener, cfg, store, version, logger)
}

// Serve runs the HTTP server on listener together with the expired token
// cleanup until ctx is cancelled.
func Serve(ctx context.Context, listener net.Listener, cfg *config.Server, store Store, version string, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           NewRouter(cfg, store, hub.New(logger), version, logger),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server started", slog.String("addr", listener.Addr().String()), slog.String("version", version))
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		cleanupExpiredTokens(gctx, store, tokenCleanupInterval, logger)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// cleanupExpiredTokens периодически удаляет просроченные refresh токены
func cleanupExpiredTokens(ctx context.Context, tokens storage.TokenStorage, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := tokens.DeleteExpiredTokens(ctx, now)
			if err != nil {
				logger.Warn("failed to delete expired tokens", slog.Any("error", err))
				continue
			}
			if n > 0 {
				logger.Info("expired refresh tokens deleted", slog.Int("count", n))
			}
		}
	}
}
