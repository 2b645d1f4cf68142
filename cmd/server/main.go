package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taxidash/internal/app"
	"taxidash/internal/config"
	"taxidash/internal/handler"
	"taxidash/internal/ingest"
	"taxidash/internal/middleware"
	internalRedis "taxidash/internal/redis"
	"taxidash/internal/render"
	"taxidash/internal/repository"
	"taxidash/internal/repository/memory"
	"taxidash/internal/repository/postgres"
	"taxidash/internal/sample"
	"taxidash/internal/service"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	loc, err := cfg.Dashboard.Location()
	if err != nil {
		logger.Fatal("invalid timezone", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			logger.Warn("failed to initialize New Relic", zap.Error(err))
		} else {
			logger.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	// Trip store.
	var tripRepo repository.TripRepository
	switch cfg.Dashboard.DataSource {
	case config.DataSourcePostgres:
		if cfg.Database.Migrate {
			if err := app.RunMigrations(cfg.Database, logger); err != nil {
				logger.Fatal("failed to migrate database", zap.Error(err))
			}
		}

		db, err := app.NewDatabase(ctx, cfg.Database, nrApp, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer closeDatabase(db, logger)
		logger.Info("connected to PostgreSQL")

		tripRepo = postgres.NewTripRepository(db, loc)

	default:
		trips := sample.SeedTrips(loc)
		if cfg.Dashboard.SampleSize > 0 {
			trips = sample.Generate(cfg.Dashboard.SampleSize, cfg.Dashboard.Seed, loc)
		}
		tripRepo = memory.NewTripRepository(trips)
		logger.Info("using sample dataset", zap.Int("trips", len(trips)))
	}

	// Redis is optional: without it views are recomputed on every request.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp, logger)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		logger.Info("connected to Redis")
	}

	dashboardService, importService := wireServices(tripRepo, redisClient, loc, cfg, logger)
	server := wireServer(dashboardService, importService, redisClient, nrApp, cfg, logger)

	// Background workers stop when workerCtx is cancelled.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	if cfg.RabbitMQ.Enabled {
		conn, err := app.NewRabbitMQConnection(cfg.RabbitMQ)
		if err != nil {
			logger.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
		defer closeQueue(conn, logger)

		consumer := ingest.NewConsumer(conn, ingest.ConsumerConfig{
			Queue:       cfg.RabbitMQ.Queue,
			ConsumerTag: cfg.RabbitMQ.ConsumerTag,
			Prefetch:    cfg.RabbitMQ.Prefetch,
			Location:    loc,
			RetryDelay:  cfg.RabbitMQ.RetryDelay,
		}, importService, logger.Named("consumer"))

		workers.Add(1)
		go func() {
			defer workers.Done()
			if err := consumer.Run(workerCtx); err != nil {
				logger.Error("trip consumer stopped", zap.Error(err))
			}
		}()
	}

	// Start server in goroutine.
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	stopWorkers()
	workers.Wait()

	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	logger.Info("server exited")
}

// wireServices builds the dashboard and import services.
func wireServices(
	tripRepo repository.TripRepository,
	redisClient *redis.Client,
	loc *time.Location,
	cfg *config.Config,
	logger *zap.Logger,
) (*service.DashboardService, *service.ImportService) {
	// Interfaces stay nil when Redis is disabled.
	var viewCache internalRedis.ViewCacheInterface
	var lockStore internalRedis.LockStoreInterface
	if redisClient != nil {
		viewCache = internalRedis.NewViewCache(redisClient, cfg.Dashboard.CacheTTL)
		lockStore = internalRedis.NewLockStore(redisClient)
	}

	dashboardService := service.NewDashboardService(tripRepo, viewCache, service.DashboardConfig{
		PageSize:          cfg.Dashboard.PageSize,
		MaxPageSize:       cfg.Dashboard.MaxPageSize,
		OutlierMultiplier: cfg.Dashboard.OutlierMultiplier,
		ZonePrecision:     cfg.Dashboard.ZonePrecision,
		ZoneLimit:         cfg.Dashboard.ZoneLimit,
	}, logger.Named("dashboard"))

	importService := service.NewImportService(tripRepo, viewCache, lockStore, loc, logger.Named("import"))

	return dashboardService, importService
}

// wireServer wires the HTTP layer and returns the server.
func wireServer(
	dashboardService *service.DashboardService,
	importService *service.ImportService,
	redisClient *redis.Client,
	nrApp *newrelic.Application,
	cfg *config.Config,
	logger *zap.Logger,
) *http.Server {
	renderer := render.NewRenderer(cfg.Dashboard.ChartWidth, cfg.Dashboard.ChartHeight)

	router := app.NewRouter(app.RouterDeps{
		DashboardHandler: handler.NewDashboardHandler(dashboardService),
		ChartHandler:     handler.NewChartHandler(dashboardService, renderer),
		ImportHandler:    handler.NewImportHandler(importService),
		RedisClient:      redisClient,
		NewRelicApp:      nrApp,
		Logger:           logger,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      middleware.CORS(cfg.Server.AllowedOrigins, router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

func closeDatabase(db *sql.DB, logger *zap.Logger) {
	if err := db.Close(); err != nil {
		logger.Warn("failed to close database", zap.Error(err))
	}
}

func closeQueue(conn *amqp.Connection, logger *zap.Logger) {
	if err := conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		logger.Warn("failed to close rabbitmq connection", zap.Error(err))
	}
}
