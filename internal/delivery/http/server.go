package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"github.com/tour-microservice/internal/config"
	"github.com/tour-microservice/internal/delivery/http/handler"
	"github.com/tour-microservice/internal/delivery/http/middleware"
	"go.uber.org/zap"
)

// Server is the Fiber HTTP server.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	tourHandler        *handler.TourHandler
	stopHandler        *handler.StopHandler
	reportHandler      *handler.ReportHandler
	activityHandler    *handler.ActivityHandler
	reviewHandler      *handler.ReviewHandler
	leaderboardHandler *handler.LeaderboardHandler
}

// NewServer creates the HTTP server with all routes wired.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tourHandler *handler.TourHandler,
	stopHandler *handler.StopHandler,
	reportHandler *handler.ReportHandler,
	activityHandler *handler.ActivityHandler,
	reviewHandler *handler.ReviewHandler,
	leaderboardHandler *handler.LeaderboardHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Tour Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                app,
		config:             cfg,
		logger:             logger,
		tourHandler:        tourHandler,
		stopHandler:        stopHandler,
		reportHandler:      reportHandler,
		activityHandler:    activityHandler,
		reviewHandler:      reviewHandler,
		leaderboardHandler: leaderboardHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// CMS routes: tour authoring and analytics.
	cms := api.Group("/cms")

	cms.Get("/tours", s.tourHandler.Index)
	cms.Post("/tours", s.tourHandler.Store)
	cms.Get("/tours/:tour", s.tourHandler.Show)
	cms.Put("/tours/:tour", s.tourHandler.Update)
	cms.Delete("/tours/:tour", s.tourHandler.Destroy)
	cms.Put("/tours/:tour/publish", s.tourHandler.Publish)
	cms.Put("/tours/:tour/unpublish", s.tourHandler.Unpublish)

	cms.Get("/tours/:tour/stops", s.stopHandler.Index)
	cms.Post("/tours/:tour/stops", s.stopHandler.Store)
	cms.Get("/tours/:tour/stops/:stop", s.stopHandler.Show)
	cms.Put("/tours/:tour/stops/:stop", s.stopHandler.Update)
	cms.Delete("/tours/:tour/stops/:stop", s.stopHandler.Destroy)
	cms.Put("/tours/:tour/stops/:stop/order", s.stopHandler.ChangeOrder)

	cms.Get("/analytics/:tour/overview", s.reportHandler.StopOverview)

	// Mobile routes: published-tour consumption and tracking.
	mobile := api.Group("/mobile")

	mobile.Get("/tours/:tour", s.tourHandler.Show)
	mobile.Post("/tours/:tour/track", s.activityHandler.TrackTour)
	mobile.Post("/tours/:tour/stops/:stop/track", s.activityHandler.TrackStop)
	mobile.Get("/tours/:tour/reviews", s.reviewHandler.Index)
	mobile.Post("/tours/:tour/reviews", s.reviewHandler.Store)
	mobile.Get("/tours/:tour/leaderboard", s.leaderboardHandler.Show)
	mobile.Post("/tours/:tour/score", s.leaderboardHandler.Store)
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown performs a graceful shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
