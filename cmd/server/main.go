package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	identityapp "github.com/timetracker/backend/internal/application/identity"
	projectapp "github.com/timetracker/backend/internal/application/project"
	screenshotapp "github.com/timetracker/backend/internal/application/screenshot"
	timesheetapp "github.com/timetracker/backend/internal/application/timesheet"
	"github.com/timetracker/backend/internal/infrastructure/auth"
	"github.com/timetracker/backend/internal/infrastructure/cache"
	"github.com/timetracker/backend/internal/infrastructure/config"
	"github.com/timetracker/backend/internal/infrastructure/event"
	"github.com/timetracker/backend/internal/infrastructure/form"
	"github.com/timetracker/backend/internal/infrastructure/logger"
	"github.com/timetracker/backend/internal/infrastructure/persistence"
	"github.com/timetracker/backend/internal/infrastructure/storage"
	"github.com/timetracker/backend/internal/infrastructure/telemetry"
	"github.com/timetracker/backend/internal/interfaces/http/handler"
	"github.com/timetracker/backend/internal/interfaces/http/middleware"
	"github.com/timetracker/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			Time Tracker API
//	@version		1.0
//	@description	Backend for the desktop time tracker: project lookups, timesheet finalization and session screenshots

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.FromAppConfig(cfg.App, cfg.Log))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting time tracker backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	// Tracing
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFromApp(cfg.Telemetry, version), log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Metrics
	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfigFromApp(cfg.Telemetry, version), log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if db.Driver() == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}
	log.Info("Database connected", zap.String("driver", db.Driver()))

	if tp.IsEnabled() && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.DefaultDBTracingConfig()
		dbTracing.Enabled = true
		dbTracing.LogFullSQL = cfg.Telemetry.DBLogFullSQL
		dbTracing.SlowQueryThresh = cfg.Telemetry.DBSlowQueryThresh
		if db.Driver() == "sqlite" {
			dbTracing.DBSystem = "sqlite"
		}
		if err := telemetry.NewDBTracingPlugin(dbTracing, log).Register(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get sql.DB", zap.Error(err))
	}

	// Redis is optional; without it caches and the revocation list stay in process
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			if cfg.App.IsProduction() {
				log.Fatal("Redis is enabled but unreachable", zap.Error(err))
			}
			log.Warn("Redis unreachable, using in-memory cache and revocation list", zap.Error(err))
			redisClient = nil
		} else {
			defer func() {
				_ = redisClient.Close()
			}()
		}
	}

	lookupCache, err := cache.NewFactory(redisClient,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction() || !cfg.Redis.Enabled),
	).Create()
	if err != nil {
		log.Fatal("Failed to create lookup cache", zap.Error(err))
	}
	if closer, ok := lookupCache.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	var revocation auth.RevocationList = auth.NewInMemoryRevocationList()
	if redisClient != nil {
		revocation = auth.NewRedisRevocationList(redisClient)
	}

	// Screenshot storage
	objectStorage, err := newObjectStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Repositories
	timesheetRepo := persistence.NewGormTimesheetRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	activityRepo := persistence.NewGormActivityTypeRepository(db.DB)
	fileRepo := persistence.NewGormFileRepository(db.DB)
	credentialRepo := persistence.NewGormAPICredentialRepository(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	auditHandler := timesheetapp.NewAuditHandler(log)
	eventBus.Subscribe(auditHandler)
	if mp.IsEnabled() {
		trackerMetrics, err := telemetry.NewTrackerMetrics(mp.Meter("timetracker"))
		if err != nil {
			log.Fatal("Failed to create tracker metrics", zap.Error(err))
		}
		eventBus.Subscribe(timesheetapp.NewMetricsHandler(trackerMetrics))
	}
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	log.Info("Event handlers registered", zap.Strings("audit_events", auditHandler.EventTypes()))

	// Form change handlers
	formRegistry := form.NewRegistry(log)
	timesheetapp.NewBillablePropagationRule(log).Register(formRegistry)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	tokenService := identityapp.NewTokenService(credentialRepo, jwtService, revocation, eventBus, log)
	projectService := projectapp.NewService(projectRepo, lookupCache, cfg.Tracker.LookupCacheTTL, log)
	timesheetService := timesheetapp.NewService(
		timesheetRepo,
		activityRepo,
		fileRepo,
		persistence.NewGormTransactionScope(db.DB),
		formRegistry,
		eventBus,
		timesheetapp.ServiceConfig{
			SiteURL:         cfg.Site.BaseURL,
			DefaultActivity: cfg.Tracker.DefaultActivity,
		},
		log,
	)
	screenshotService := screenshotapp.NewService(
		fileRepo,
		objectStorage,
		eventBus,
		screenshotapp.ServiceConfig{
			MaxBytes:          cfg.Tracker.MaxScreenshotBytes,
			DownloadURLExpiry: cfg.Storage.DownloadURLExpiry,
		},
		log,
	)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Revocation = revocation
	jwtConfig.Logger = log

	engine := router.NewEngine(router.EngineConfig{
		HTTP: cfg.HTTP,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tp.IsEnabled(),
		},
		Metrics: middleware.HTTPMetricsConfig{
			MeterProvider: mp,
			Enabled:       mp.IsEnabled(),
		},
		JWT:    jwtConfig,
		Logger: log,
	}, router.Handlers{
		System:     handler.NewSystemHandler(sqlDB, version),
		Auth:       handler.NewAuthHandler(tokenService),
		Project:    handler.NewProjectHandler(projectService),
		Timesheet:  handler.NewTimesheetHandler(timesheetService),
		Screenshot: handler.NewScreenshotHandler(screenshotService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newObjectStorage returns the configured screenshot store. The memory driver
// is for development; its download URLs are not served.
func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (screenshotapp.ObjectStorage, error) {
	if cfg.Storage.Driver != "s3" {
		log.Warn("Using in-memory screenshot storage; uploads are lost on restart")
		return storage.NewMemoryObjectStorage(cfg.Site.BaseURL + "/private/files"), nil
	}

	s3Storage, err := storage.NewS3ObjectStorage(ctx, &cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s3Storage.EnsureBucket(initCtx); err != nil {
		return nil, err
	}
	log.Info("S3 screenshot storage ready", zap.String("bucket", s3Storage.Bucket()))
	return s3Storage, nil
}
