// Package main is the entry point for the trip-planning API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/pressly/goose/v3"

	"github.com/tripdeck/backend/internal/ai"
	"github.com/tripdeck/backend/internal/config"
	"github.com/tripdeck/backend/internal/handler"
	"github.com/tripdeck/backend/internal/middleware"
	"github.com/tripdeck/backend/internal/repo"
	"github.com/tripdeck/backend/internal/service"
	"github.com/tripdeck/backend/migrations"
)

// maxBodySize caps request bodies; the largest legitimate payload is a
// modify request carrying action parameters.
const maxBodySize = 1 << 20 // 1MB

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	// DATABASE_URL selects the backing: Postgres when set, otherwise the
	// in-memory store (state lives for the process lifetime only).
	var (
		users repo.UserRepo
		trips repo.TripRepo
		carts repo.CartItemRepo
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		if err := migrate(cfg.DatabaseURL); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		slog.Info("database connection established")

		users = repo.NewUserRepo(pool)
		trips = repo.NewTripRepo(pool)
		carts = repo.NewCartItemRepo(pool)
	} else {
		slog.Info("DATABASE_URL not set, using in-memory store")
		users = repo.NewMemoryUserRepo()
		trips = repo.NewMemoryTripRepo()
		carts = repo.NewMemoryCartItemRepo()
	}

	// --- AI gateway -------------------------------------------------------
	if cfg.OpenAIKey == "" {
		slog.Warn("OPENAI_API_KEY not set; AI operations will fail at call time")
	}
	completer := ai.NewOpenAICompleter(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, logger)
	gateway := ai.NewGateway(completer, logger)

	// --- Services ---------------------------------------------------------
	userService := service.NewUserService(users, trips, gateway)
	tripService := service.NewTripService(users, trips, carts, gateway)
	cartService := service.NewCartService(trips, carts)
	assistantService := service.NewAssistantService(trips, carts, gateway)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	srv := handler.NewServer(userService, tripService, cartService, assistantService)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// The write timeout is generous because generation requests block on the
	// provider for multiple seconds.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies the embedded goose migrations against the database.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
