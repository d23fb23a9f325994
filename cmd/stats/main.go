package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaron7/pomodoro/internal/config"
	"github.com/aaron7/pomodoro/internal/database"
	"github.com/aaron7/pomodoro/internal/logging"
	"github.com/aaron7/pomodoro/internal/stats"
	"github.com/aaron7/pomodoro/internal/statsweb"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	return pool
}

func runGracefulShutdown(srv *statsweb.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Stats service starting", "env", cfg.AppEnv, "port", cfg.StatsPort)

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("Failed to resolve timezone", "error", err)
		os.Exit(1)
	}

	pool := setupDB(cfg)
	defer pool.Close()

	userRepo := database.NewUserRepo(pool)
	entryRepo := database.NewEntryRepo(pool)

	engine := stats.NewEngine(entryRepo, clockwork.NewRealClock(), loc, cfg.MinPomodoroTime, cfg.StatsTypeFilter)

	srv := statsweb.NewServer(cfg, userRepo, engine, pool)

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.StatsPort)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
