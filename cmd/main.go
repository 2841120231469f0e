// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sportscomplex/class-enrollment/internal/config"
	"github.com/sportscomplex/class-enrollment/internal/database"
	"github.com/sportscomplex/class-enrollment/internal/handler"
	"github.com/sportscomplex/class-enrollment/internal/repository"
	"github.com/sportscomplex/class-enrollment/internal/service"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := database.NewPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	slog.Info("connected to postgres", "db", cfg.DBName)

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	// Wire up layers.
	sportRepo := repository.NewSportRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool, cfg.LockTimeout)

	userSvc := service.NewUserService(userRepo, cfg.BcryptCost)
	authSvc := service.NewAuthService(userRepo, userSvc, cfg.JWTSecret, cfg.TokenTTL)
	sportSvc := service.NewSportService(sportRepo, classRepo)
	classSvc := service.NewClassService(classRepo, sportRepo, scheduleRepo, applicationRepo)

	r := handler.NewRouter(authSvc, sportSvc, classSvc, userSvc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Block until SIGINT, SIGTERM, or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
