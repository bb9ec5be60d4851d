package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appdonation "github.com/NapatKulnarong/ReMeals/internal/application/donation"
	identityapp "github.com/NapatKulnarong/ReMeals/internal/application/identity"
	logisticsapp "github.com/NapatKulnarong/ReMeals/internal/application/logistics"
	partnerapp "github.com/NapatKulnarong/ReMeals/internal/application/partner"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/auth"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/cache"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/config"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/logger"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/persistence"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/scheduler"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/telemetry"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/handler"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/middleware"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ReMeals API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	// Tracing must be installed before the database so otelgorm picks up the provider
	tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowThreshold))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", db.Driver))

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
		log.Info("Database schema migrated")
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, db.Driver, log); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	metrics := telemetry.NewMetrics()
	if sqlDB, err := db.DB.DB(); err == nil {
		if err := metrics.RegisterDB(sqlDB, cfg.Database.DBName); err != nil {
			log.Warn("Failed to register database pool metrics", zap.Error(err))
		}
	}

	stores := cache.Open(ctx, cfg.Redis, log)

	// Application services
	repos := persistence.NewRepositories(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)
	jwtService := auth.NewJWTService(cfg.JWT)

	impactService := appdonation.NewImpactService(repos, stores.Summary, log)
	impactService.OnRecorded(metrics.ImpactRecorded)
	impactService.OnSummaryLookup(metrics.SummaryLookup)

	foodItemService := appdonation.NewFoodItemService(repos, txScope, impactService, log)
	deliveryService := logisticsapp.NewDeliveryService(repos, txScope, impactService, log)
	deliveryService.Observe(metrics)

	// Background jobs
	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs = scheduler.New(scheduler.Config{
			JobTimeout: cfg.Scheduler.JobTimeout,
			Location:   time.UTC,
			OnRun:      metrics.JobRun,
		}, log)
		sweep := scheduler.NewExpirySweepJob(foodItemService, log, metrics.FoodItemsExpired)
		if err := jobs.Register(cfg.Scheduler.ExpirySweepSchedule, sweep); err != nil {
			log.Fatal("Failed to schedule expiry sweep", zap.Error(err))
		}
		jobs.Start()
	}

	handlers := router.Handlers{
		Warehouse: handler.NewWarehouseHandler(
			partnerapp.NewWarehouseService(repos.Warehouses(), repos.Deliveries(), repos.FoodItems())),
		Community: handler.NewCommunityHandler(
			partnerapp.NewCommunityService(repos.Communities(), repos.Warehouses())),
		Restaurant: handler.NewRestaurantHandler(
			partnerapp.NewRestaurantService(repos.Restaurants(), repos.Chains()),
			partnerapp.NewChainService(repos.Chains())),
		Donation:        handler.NewDonationHandler(appdonation.NewDonationService(repos, txScope)),
		FoodItem:        handler.NewFoodItemHandler(foodItemService),
		Impact:          handler.NewImpactHandler(impactService),
		DonationRequest: handler.NewDonationRequestHandler(appdonation.NewDonationRequestService(repos, txScope)),
		Delivery:        handler.NewDeliveryHandler(deliveryService),
		Auth: handler.NewAuthHandler(
			identityapp.NewAuthService(repos.Users(), jwtService, stores.Blacklist, log)),
		User: handler.NewUserHandler(
			identityapp.NewUserService(repos.Users(), repos.Roles(), log)),
		Health: handler.NewHealthHandler(db, version),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)))
		log.Info("Rate limiting enabled",
			zap.Float64("rps", cfg.HTTP.RateLimitRPS),
			zap.Int("burst", cfg.HTTP.RateLimitBurst),
		)
	}
	if cfg.Metrics.Enabled {
		engine.Use(middleware.Metrics(metrics))
		engine.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}
	engine.Use(middleware.Identity(middleware.IdentityConfig{
		JWTService:     jwtService,
		TokenBlacklist: stores.Blacklist,
		Logger:         log,
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())

	router.Mount(engine, handlers)

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
	if jobs != nil {
		if err := jobs.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping scheduler", zap.Error(err))
		}
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer", zap.Error(err))
	}
	if err := stores.Close(); err != nil {
		log.Error("Error closing redis", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
