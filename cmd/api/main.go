package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estate_portal_backend/internal/adapters"
	"estate_portal_backend/internal/adapters/storage"
	"estate_portal_backend/internal/email"
	"estate_portal_backend/internal/events"
	apphttp "estate_portal_backend/internal/http"
	"estate_portal_backend/internal/http/router"
	"estate_portal_backend/internal/inquiries"
	"estate_portal_backend/internal/investments"
	"estate_portal_backend/internal/listings"
	"estate_portal_backend/internal/loans"
	"estate_portal_backend/internal/notification"
	"estate_portal_backend/internal/scheduler"
	"estate_portal_backend/migrations"
	"estate_portal_backend/platform/cache"
	"estate_portal_backend/platform/config"
	"estate_portal_backend/platform/db"
	"estate_portal_backend/platform/logger"
	"estate_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := db.WithRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := db.WithRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	health := map[string]apphttp.HealthChecker{"database": db.NewPoolAdapter(pool)}

	// Redis backs the listing snapshot cache and the notification queue.
	// Without it the snapshot lives in process memory and e-mail is sent inline.
	var redisClient redis.Cmdable
	if cfg.GetRedisURL() != "" {
		client, err := cache.NewClient(ctx, cfg)
		if err != nil {
			log.Warn("redis unavailable; using in-process listing cache", "error", err)
		} else {
			defer func() { _ = client.Close() }()
			redisClient = client
			health["redis"] = cache.NewPingAdapter(client)
		}
	} else {
		log.Warn("REDIS_URL not configured; using in-process listing cache")
	}

	var storageSvc storage.StorageService
	if cfg.IsMinIOEnabled() {
		minioSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		bucket := cfg.GetMinioBucketListingMedia()
		if err := db.WithRetry(ctx, log, "ensure listing media bucket", 5, 2*time.Second, func() error {
			return minioSvc.EnsureBucketExists(ctx, bucket)
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		storageSvc = minioSvc
		log.Info("storage service initialized", "listingMediaBucket", bucket)
	} else {
		log.Warn("MINIO_ENDPOINT not configured; media uploads disabled")
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	notifier, closeNotifier := initNotifier(cfg, redisClient != nil, log)
	if closeNotifier != nil {
		defer closeNotifier()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	notificationModule := notification.New(notifier, email.NewSender(cfg), cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	listingsModule, err := listings.NewModule(pool, redisClient, storageSvc, eventBus, val, cfg, log)
	if err != nil {
		log.Error("failed to initialize listings module", "error", err)
		panic("failed to initialize listings module: " + err.Error())
	}
	listingsModule.RegisterHandlers(eventBus)

	loansModule := loans.NewModule(listingsModule.Service(), val)
	inquiriesModule := inquiries.NewModule(pool, adapters.NewInquiryListingReader(listingsModule.Service()), eventBus, val, log)
	investmentsModule := investments.NewModule(pool, adapters.NewInvestmentListingReader(listingsModule.Service()), eventBus, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   health,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			listingsModule,
			loansModule,
			inquiriesModule,
			investmentsModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	eventBus.Wait()
	log.Info("server stopped")
}

func initNotifier(cfg config.SchedulerConfig, redisUp bool, log *logger.Logger) (scheduler.InquiryNotifier, func()) {
	if !redisUp {
		log.Warn("task queue disabled; inquiry e-mail is sent inline")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize task queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}
