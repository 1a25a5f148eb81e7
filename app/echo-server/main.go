package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpmetrics "uniFinder/app/echo-server/metrics"
	"uniFinder/app/echo-server/router"
	"uniFinder/business/finaid"
	"uniFinder/business/matching"
	"uniFinder/business/profile"
	"uniFinder/business/university"
	"uniFinder/internal/middleware"
	psqlRepo "uniFinder/internal/repository/postgres"
	redisRepo "uniFinder/internal/repository/redis"
	"uniFinder/internal/rest"
	"uniFinder/pkg/config"
	"uniFinder/pkg/database"
	redisdb "uniFinder/pkg/database/redis"
	"uniFinder/pkg/logger"
	"uniFinder/pkg/metrics"
	"uniFinder/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting uniFinder", "version", cfg.App.Version, "env", cfg.App.Environment)

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	metrics.Init()
	httpmetrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init repo
	universityRepo := psqlRepo.NewUniversityRepository(db)
	profileRepo := psqlRepo.NewStudentProfileRepository(db)

	// Init service
	universityService := university.NewUniversityService(universityRepo)
	profileService := profile.NewService(profileRepo)
	predictService := finaid.NewService(universityRepo, profileRepo)

	var matcher matching.Matcher = matching.NewService(universityRepo)
	if cfg.Match.CacheEnabled {
		rdb, err := redisdb.Connect(context.Background(), cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, match cache disabled", "error", err)
		} else {
			defer redisdb.Close(rdb)
			matcher = matching.NewCachedMatcher(matcher, universityRepo, redisRepo.NewMatchCacheRepository(rdb), cfg.Match.CacheTTL)
			logger.Info("Match cache enabled", "ttl", cfg.Match.CacheTTL)
		}
	}

	// Init handler
	universityHandler := rest.NewUniversityHandler(universityService)
	profileHandler := rest.NewProfileHandler(profileService)
	predictHandler := rest.NewPredictHandler(predictService)
	matchHandler := rest.NewMatchHandler(matcher, cfg.Match.DefaultTopN)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(httpmetrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUniversityRoutes(api, universityHandler, authRequired, adminOnly)
	router.SetupProfileRoutes(api, profileHandler, authRequired)
	router.SetupPredictRoutes(api, predictHandler, authRequired)
	router.SetupMatchRoutes(api, matchHandler)
	router.SetupMetricsRoutes(e)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}

	logger.Info("Server stopped")
}
