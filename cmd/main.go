package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amin-97/sport-vibe/config"
	"github.com/amin-97/sport-vibe/db"
	"github.com/amin-97/sport-vibe/handlers"
	"github.com/amin-97/sport-vibe/live"
	"github.com/amin-97/sport-vibe/repositories"
	api "github.com/amin-97/sport-vibe/routes"
	"github.com/amin-97/sport-vibe/services"
	"github.com/amin-97/sport-vibe/storage"
	"github.com/amin-97/sport-vibe/traderules"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

// salaryRefreshInterval controls how often cached team payroll totals are
// recomputed from live rosters.
const salaryRefreshInterval = 5 * time.Minute

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	hub := live.NewHub()
	go hub.Run()
	logger.Info("WebSocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	pickRepo := repositories.NewPostgresDraftPickRepository(dbConn)
	exceptionRepo := repositories.NewPostgresTradeExceptionRepository(dbConn)
	tradeRepo := repositories.NewPostgresTradeRepository(dbConn)
	newsRepo := repositories.NewPostgresNewsRepository(dbConn)
	editorialRepo := repositories.NewPostgresEditorialRepository(dbConn)
	wrestlingRepo := repositories.NewPostgresWrestlingResultRepository(dbConn)
	statsRepo := repositories.NewPostgresCareerStatsRepository(dbConn)
	logger.Info("repositories initialized")

	salaryCalc := traderules.NewSalaryCalculator(cfg.Rules)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, uploader)
	teamService := services.NewTeamService(teamRepo, playerRepo, pickRepo, salaryCalc, uploader, logger)
	tradeService := services.NewTradeService(
		dbConn,
		teamRepo,
		playerRepo,
		pickRepo,
		exceptionRepo,
		tradeRepo,
		cfg.Rules,
		hub,
		logger,
	)
	newsService := services.NewNewsService(newsRepo, userRepo, uploader)
	editorialService := services.NewEditorialService(editorialRepo, userRepo, uploader)
	wrestlingService := services.NewWrestlingService(wrestlingRepo, uploader)
	statsService := services.NewStatsService(statsRepo)
	logger.Info("services initialized")

	// Keep cached payroll totals fresh. Run once at startup, then on ticker.
	go func() {
		ticker := time.NewTicker(salaryRefreshInterval)
		defer ticker.Stop()
		logger.Info("team salary refresh scheduler started", slog.Duration("interval", salaryRefreshInterval))

		if err := teamService.RefreshAllTeamSalaries(context.Background()); err != nil {
			logger.Error("salary refresh: initial run failed", slog.Any("error", err))
		}

		for range ticker.C {
			if err := teamService.RefreshAllTeamSalaries(context.Background()); err != nil {
				logger.Error("salary refresh: periodic run failed", slog.Any("error", err))
			}
		}
	}()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService)
	tradeHandler := handlers.NewTradeHandler(tradeService)
	newsHandler := handlers.NewNewsHandler(newsService)
	editorialHandler := handlers.NewEditorialHandler(editorialService)
	wrestlingHandler := handlers.NewWrestlingHandler(wrestlingService)
	statsHandler := handlers.NewStatsHandler(statsService)
	webSocketHandler := handlers.NewWebSocketHandler(hub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		cfg.CORSAllowedOrigin,
		authHandler,
		userHandler,
		teamHandler,
		tradeHandler,
		newsHandler,
		editorialHandler,
		wrestlingHandler,
		statsHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
