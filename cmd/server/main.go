// @title Supplier Import API
// @version 1.0
// @description Supplier price list import, parser configuration and discount validation.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kosarica/supplier-import/config"
	_ "github.com/kosarica/supplier-import/docs"
	"github.com/kosarica/supplier-import/internal/database"
	"github.com/kosarica/supplier-import/internal/handlers"
	"github.com/kosarica/supplier-import/internal/importer"
	"github.com/kosarica/supplier-import/internal/middleware"
	"github.com/kosarica/supplier-import/internal/parserconfig"
	"github.com/kosarica/supplier-import/internal/suppliers"
	"github.com/kosarica/supplier-import/internal/telemetry"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting supplier import service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize telemetry")
	}

	registry := parserconfig.DefaultRegistry()

	var (
		store    suppliers.Store
		settings *suppliers.PostgresStore
	)
	switch {
	case cfg.Database.URL != "":
		if err := database.Connect(ctx, database.Config{
			URL:             cfg.Database.URL,
			MaxConns:        cfg.Database.MaxConnections,
			MinConns:        cfg.Database.MinConnections,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		}); err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer database.Close()
		logger.Info().Msg("Database connected")

		settings = suppliers.NewPostgresStore(database.Pool(), *logger)
		if err := settings.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("Failed to prepare supplier settings table")
		}
		store = settings
	case cfg.Import.SuppliersFile != "":
		fileStore, err := suppliers.LoadFile(cfg.Import.SuppliersFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to load suppliers file")
		}
		logger.Info().
			Str("file", cfg.Import.SuppliersFile).
			Int("suppliers", len(fileStore.IDs())).
			Msg("Supplier settings loaded")
		store = fileStore
	default:
		logger.Warn().Msg("No supplier settings configured; every import relies on detection")
	}

	im := importer.New(store, parserconfig.NewResolver(registry, *logger), *logger, importer.Options{
		Workers:         cfg.Import.Workers,
		ErrorDisplayCap: cfg.Import.ErrorDisplayCap,
	})
	imports := handlers.NewImportHandler(im, cfg.Import.MaxUploadBytes, cfg.Import.PreviewLines, *logger)

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	setupMiddleware(router, logger)
	router.Use(middleware.RateLimitMiddleware(ctx, middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
		IdleTTL:           middleware.DefaultRateLimiterConfig().IdleTTL,
	}))

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.Use(middleware.APIKeyAuth(cfg.Server.APIKey))
	api.Use(middleware.ServiceRateLimitMiddleware(cfg.RateLimit.ServiceRPS, cfg.RateLimit.ServiceBurst))
	{
		api.GET("/templates", handlers.ListTemplates(registry))
		api.POST("/discount-structures/validate", handlers.ValidateDiscount)

		supplier := api.Group("/suppliers/:supplierId")
		{
			supplier.POST("/imports", imports.Import)
			supplier.POST("/imports/preview", imports.Preview)

			if settings != nil {
				sh := handlers.NewSupplierSettingsHandler(settings, registry, *logger)
				supplier.GET("/settings", sh.Get)
				supplier.PUT("/settings", sh.Put)
			}
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Telemetry shutdown failed")
	}

	logger.Info().Msg("Server exited")
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "supplier-import").Logger()
	return &logger
}

func setupMiddleware(router *gin.Engine, logger *zerolog.Logger) {
	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	})
}
