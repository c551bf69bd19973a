package main

// @title Tour Microservice API
// @version 1.0.0
// @description Microservice for guided tour management. Exposes a CMS API for
// @description authoring tours and their stop sequences, analytics over visitor
// @description tracking events, and a mobile API for tour consumption, tracking,
// @description reviews and leaderboards.

// @contact.name API Support
// @contact.email support@tour-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tour-microservice/docs/swagger"
	"github.com/tour-microservice/internal/config"
	httpDelivery "github.com/tour-microservice/internal/delivery/http"
	"github.com/tour-microservice/internal/delivery/http/handler"
	"github.com/tour-microservice/internal/pkg/logger"
	"github.com/tour-microservice/internal/repository/cache"
	"github.com/tour-microservice/internal/repository/postgres"
	redisRepo "github.com/tour-microservice/internal/repository/redis"
	"github.com/tour-microservice/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Tour Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	tourRepo := postgres.NewTourRepository(db, log)
	stopRepo := postgres.NewStopRepository(db, log)
	activityRepo := postgres.NewActivityRepository(db, log)
	statsRepo := postgres.NewStatsRepository(db, log)
	reviewRepo := postgres.NewReviewRepository(db, log)
	scoreRepo := postgres.NewScoreCardRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	tourUC := usecase.NewTourUseCase(tourRepo, stopRepo, log)
	stopUC := usecase.NewStopUseCase(stopRepo, tourRepo, log)
	reportUC := usecase.NewReportUseCase(
		tourRepo,
		stopRepo,
		activityRepo,
		statsRepo,
		cacheRepo,
		log,
		cfg.Report.SessionFallback,
		cfg.Cache.ReportCacheTTL,
	)
	activityUC := usecase.NewActivityUseCase(activityRepo, stopRepo, tourRepo, streamRepo, log)
	reviewUC := usecase.NewReviewUseCase(reviewRepo, tourRepo, log)
	leaderboardUC := usecase.NewLeaderboardUseCase(
		scoreRepo,
		tourRepo,
		cacheRepo,
		log,
		cfg.Cache.LeaderboardCacheTTL,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	tourHandler := handler.NewTourHandler(tourUC, log)
	stopHandler := handler.NewStopHandler(stopUC, log)
	reportHandler := handler.NewReportHandler(reportUC, log)
	activityHandler := handler.NewActivityHandler(activityUC, log)
	reviewHandler := handler.NewReviewHandler(reviewUC, log)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		tourHandler,
		stopHandler,
		reportHandler,
		activityHandler,
		reviewHandler,
		leaderboardHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
