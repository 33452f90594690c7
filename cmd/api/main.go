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

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/iamkameel/scrbrd-beta-2-sub004/config"
	"github.com/iamkameel/scrbrd-beta-2-sub004/db"
	"github.com/iamkameel/scrbrd-beta-2-sub004/handlers"
	"github.com/iamkameel/scrbrd-beta-2-sub004/repositories"
	api "github.com/iamkameel/scrbrd-beta-2-sub004/routes"
	"github.com/iamkameel/scrbrd-beta-2-sub004/scoring"
	"github.com/iamkameel/scrbrd-beta-2-sub004/services"
	"github.com/iamkameel/scrbrd-beta-2-sub004/storage"
)

const sweepInterval = 5 * time.Minute

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

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

	wsHub := scoring.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	schoolRepo := repositories.NewPostgresSchoolRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	officialRepo := repositories.NewPostgresOfficialRepository(dbConn)
	sponsorRepo := repositories.NewPostgresSponsorRepository(dbConn)
	equipmentRepo := repositories.NewPostgresEquipmentRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	inningsRepo := repositories.NewPostgresInningsRepository(dbConn)
	deliveryRepo := repositories.NewPostgresDeliveryRepository(dbConn)
	bracketRepo := repositories.NewPostgresBracketRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	schoolService := services.NewSchoolService(schoolRepo, teamRepo, uploader, logger)
	teamService := services.NewTeamService(teamRepo, schoolRepo, playerRepo, uploader, logger)
	playerService := services.NewPlayerService(playerRepo, teamRepo)
	officialService := services.NewOfficialService(officialRepo)
	sponsorService := services.NewSponsorService(sponsorRepo, uploader, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, teamRepo)
	matchService := services.NewMatchService(
		dbConn,
		matchRepo,
		inningsRepo,
		deliveryRepo,
		teamRepo,
		officialRepo,
		wsHub,
		logger,
	)
	standingService := services.NewStandingService(matchRepo, inningsRepo, teamRepo)
	bracketService := services.NewBracketService(bracketRepo, matchRepo, standingService)
	logger.Info("services initialized")

	// Overdue fixtures are postponed automatically when no toss ever arrives.
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		logger.Info("fixture sweep scheduler started", slog.Duration("interval", sweepInterval))

		for range ticker.C {
			swept, err := matchService.SweepOverdueFixtures(context.Background())
			if err != nil {
				logger.Error("fixture sweep failed", slog.Any("error", err))
				continue
			}
			if swept > 0 {
				logger.Info("fixture sweep postponed overdue matches", slog.Int("count", swept))
			}
		}
	}()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	userHandler := handlers.NewUserHandler(userService)
	schoolHandler := handlers.NewSchoolHandler(schoolService)
	teamHandler := handlers.NewTeamHandler(teamService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	officialHandler := handlers.NewOfficialHandler(officialService)
	sponsorHandler := handlers.NewSponsorHandler(sponsorService)
	equipmentHandler := handlers.NewEquipmentHandler(equipmentService)
	matchHandler := handlers.NewMatchHandler(matchService)
	standingHandler := handlers.NewStandingHandler(standingService)
	bracketHandler := handlers.NewBracketHandler(bracketService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		userHandler,
		schoolHandler,
		teamHandler,
		playerHandler,
		officialHandler,
		sponsorHandler,
		equipmentHandler,
		matchHandler,
		standingHandler,
		bracketHandler,
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
