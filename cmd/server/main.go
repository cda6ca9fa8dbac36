package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/icarus-portal/icarus-api/internal/config"
	"github.com/icarus-portal/icarus-api/internal/domain/activity"
	"github.com/icarus-portal/icarus-api/internal/domain/application"
	"github.com/icarus-portal/icarus-api/internal/domain/notification"
	"github.com/icarus-portal/icarus-api/internal/domain/project"
	"github.com/icarus-portal/icarus-api/internal/domain/user"
	"github.com/icarus-portal/icarus-api/internal/metrics"
	"github.com/icarus-portal/icarus-api/internal/sqlite"
	"github.com/icarus-portal/icarus-api/internal/transport"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := sqlite.NewUserRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	applicationRepo := sqlite.NewApplicationRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	tokenRepo := sqlite.NewTokenRepository(db)

	userSvc := user.NewService(userRepo, logger)
	projectSvc := project.NewService(projectRepo, userSvc, logger)
	activitySvc := activity.NewService(activityRepo, logger)
	applicationSvc := application.NewService(applicationRepo, projectRepo, userRepo, activitySvc, logger)
	notificationSvc := notification.NewService(applicationRepo, logger)

	resolver := &tokenIdentityResolver{tokens: tokenRepo, users: userRepo}

	middlewares := []func(http.Handler) http.Handler{metrics.Middleware}
	if cfg.RateLimit.Enabled {
		limiter := transport.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		middlewares = append(middlewares, limiter.Middleware)
	}

	router := transport.NewServer(transport.Services{
		Users:         userSvc,
		Projects:      projectSvc,
		Applications:  applicationSvc,
		Notifications: notificationSvc,
		Activity:      activitySvc,
		Tokens:        tokenRepo,
	}, resolver, logger, middlewares...)

	mountMetrics(router)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func mountMetrics(router *chi.Mux) {
	router.Handle("/metrics", metrics.Handler())
}

// tokenIdentityResolver maps opaque bearer tokens to portal users. The tokens
// themselves come from the identity handoff at signup.
type tokenIdentityResolver struct {
	tokens interface {
		Resolve(ctx context.Context, token string) (string, error)
	}
	users interface {
		Get(ctx context.Context, id string) (*user.User, error)
	}
}

func (r *tokenIdentityResolver) ResolveIdentity(ctx context.Context, token string) (transport.Identity, error) {
	userID, err := r.tokens.Resolve(ctx, token)
	if err != nil {
		return transport.Identity{}, transport.ErrUnauthorized
	}
	u, err := r.users.Get(ctx, userID)
	if err != nil {
		return transport.Identity{}, transport.ErrUnauthorized
	}
	return transport.Identity{UserID: u.ID, Role: u.Role}, nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
