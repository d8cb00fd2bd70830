package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-engine/internal/audit"
	"github.com/BruksfildServices01/booking-engine/internal/config"
	dbpkg "github.com/BruksfildServices01/booking-engine/internal/db"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/handlers"
	"github.com/BruksfildServices01/booking-engine/internal/infra/cache"
	"github.com/BruksfildServices01/booking-engine/internal/infra/lock"
	"github.com/BruksfildServices01/booking-engine/internal/infra/memstore"
	infraRepo "github.com/BruksfildServices01/booking-engine/internal/infra/repository"
	"github.com/BruksfildServices01/booking-engine/internal/logger"
	"github.com/BruksfildServices01/booking-engine/internal/notify"
	"github.com/BruksfildServices01/booking-engine/internal/routes"
	"github.com/BruksfildServices01/booking-engine/internal/timezone"
	ucBooking "github.com/BruksfildServices01/booking-engine/internal/usecase/booking"
	"github.com/BruksfildServices01/booking-engine/internal/validators"
)

const shutdownTimeout = 10 * time.Second

func main() {

	cfg := config.Load()
	log := logger.New(cfg.IsProduction())
	defer func() { _ = log.Sync() }()

	timezone.SetDefault(cfg.DefaultTimezone)

	if err := validators.Register(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	checks := map[string]handlers.Check{}

	// ======================================================
	// STORAGE
	// ======================================================
	var (
		repo      domain.Repository
		auditSink audit.Sink
	)

	switch cfg.StoreBackend {
	case "memory":
		store := memstore.New()
		id, err := store.SeedDemo(cfg.DefaultTimezone)
		if err != nil {
			log.Fatal("failed to seed demo provider", zap.Error(err))
		}
		log.Info("using in-memory store", zap.Uint("demo_provider_id", id))

		repo = store
		auditSink = audit.NewLogSink(log)

	default:
		db := dbpkg.NewDB(cfg, log)
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("failed to get sql.DB", zap.Error(err))
		}
		defer sqlDB.Close()

		checks["postgres"] = sqlDB.PingContext
		repo = infraRepo.NewBookingGormRepository(db)
		auditSink = audit.New(db)
	}

	// ======================================================
	// REDIS (LOCK + CACHE)
	// ======================================================
	var (
		locker     lock.Locker              = lock.NewLocalLocker(cfg.LockWait)
		quickCache ucBooking.QuickSlotCache = cache.Nop{}
	)

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
		quickCache = cache.NewQuickSlotCache(rdb, cfg.QuickSlotsCacheTTL, log)

		if cfg.LockBackend == "redis" {
			locker = lock.NewRedisLocker(rdb, cfg.LockTTL, cfg.LockWait, log)
		}
	} else if cfg.LockBackend == "redis" {
		log.Warn("LOCK_BACKEND=redis without REDIS_ADDR, falling back to in-process locks")
	}

	// ======================================================
	// NOTIFICATIONS + AUDIT
	// ======================================================
	var sender notify.Sender = notify.NewLogSender(log)
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSender := notify.NewKafkaSender(cfg.KafkaBrokers, cfg.KafkaNotifyTopic)
		defer kafkaSender.Close()
		sender = kafkaSender
	}
	notifier := notify.NewDispatcher(sender, cfg.NotifyQueueSize, log)

	auditDispatcher := audit.NewDispatcher(auditSink, log)

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, cfg, routes.Dependencies{
		Repo:     repo,
		Locker:   locker,
		Cache:    quickCache,
		Audit:    auditDispatcher,
		Notifier: notifier,
		Checks:   checks,
		Log:      log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("store", cfg.StoreBackend),
			zap.String("lock", cfg.LockBackend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := notifier.Close(shutdownCtx); err != nil {
		log.Warn("pending notifications dropped", zap.Error(err))
	}
}
