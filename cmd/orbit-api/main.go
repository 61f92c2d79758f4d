package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/orbit-api/api/swagger"
	"github.com/noah-isme/orbit-api/internal/handler"
	"github.com/noah-isme/orbit-api/internal/llm"
	"github.com/noah-isme/orbit-api/internal/middleware"
	"github.com/noah-isme/orbit-api/internal/repository"
	"github.com/noah-isme/orbit-api/internal/service"
	"github.com/noah-isme/orbit-api/pkg/cache"
	"github.com/noah-isme/orbit-api/pkg/config"
	"github.com/noah-isme/orbit-api/pkg/database"
	"github.com/noah-isme/orbit-api/pkg/export"
	"github.com/noah-isme/orbit-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/orbit-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/orbit-api/pkg/middleware/requestid"
)

// @title Orbit API
// @version 1.0.0
// @description Event capture, extraction and calendar export backend
// @BasePath /
// @schemes http

type eventStore interface {
	service.EventStore
	EnsureSchema(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	store, closeStore, err := openEventStore(cfg.Database)
	if err != nil {
		logr.Fatal("failed to open event store", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer closeStore() //nolint:errcheck

	schemaCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = store.EnsureSchema(schemaCtx)
	cancel()
	if err != nil {
		logr.Fatal("failed to prepare event schema", zap.Error(err))
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Fatal("failed to connect redis", zap.Error(err))
	}
	stateRepo := repository.NewOAuthStateRepository(redisClient)
	defer stateRepo.Close() //nolint:errcheck

	generator, err := llm.NewGenerator(ctx, cfg.LLM, logr)
	if err != nil {
		logr.Fatal("failed to init text generator", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
	}

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	validate := validator.New()
	eventSvc := service.NewEventService(store, validate, metricsSvc, logr)
	extractionSvc := service.NewExtractionService(generator, cfg.LLM.Timeout, metricsSvc, logr)
	exportSvc := service.NewExportService(store, logr, export.NewICSExporter(), export.NewCSVExporter(), export.NewPDFExporter())
	oauthSvc := service.NewOAuthService(cfg.OAuth, stateRepo, logr)

	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))

	handler.RegisterRoutes(r, handler.Handlers{
		Events:     handler.NewEventHandler(eventSvc),
		Extraction: handler.NewExtractionHandler(extractionSvc),
		Export:     handler.NewExportHandler(exportSvc),
		Auth:       handler.NewAuthHandler(oauthSvc),
		Metrics:    metricsHandler,
	}, corsmiddleware.New(cfg.CORS.AllowedOrigins))

	if metricsSvc != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"db_driver", cfg.Database.Driver,
		"llm_enabled", generator != nil,
		"redis_enabled", redisClient != nil,
	)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func openEventStore(cfg config.DatabaseConfig) (eventStore, func() error, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		gdb, err := database.NewMySQL(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, err
		}
		return repository.NewGormEventRepository(gdb), sqlDB.Close, nil
	case config.DriverPostgres, "":
		db, err := database.NewPostgres(cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewEventRepository(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}
