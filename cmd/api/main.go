// Package main is the entry point for the jobnagringa content API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobnagringa-content-api/internal/app/service"
	"jobnagringa-content-api/internal/config"
	"jobnagringa-content-api/internal/domain"
	"jobnagringa-content-api/internal/infra/cache"
	"jobnagringa-content-api/internal/infra/postgres"
	"jobnagringa-content-api/internal/infra/postgres/migrations"
	rediscache "jobnagringa-content-api/internal/infra/redis"
	"jobnagringa-content-api/internal/infra/strapi"
	"jobnagringa-content-api/internal/job"
	"jobnagringa-content-api/internal/logger"
	"jobnagringa-content-api/internal/store"
	"jobnagringa-content-api/internal/transport/httpserver"
	"jobnagringa-content-api/internal/validator"
	"jobnagringa-content-api/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Service: cfg.App.Name,
			Level:   cfg.Logger.Level,
			Format:  cfg.Logger.Format,
			Output:  cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting jobnagringa-content-api",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
		zap.String("content_source", cfg.Content.Source),
	)

	ctx := context.Background()

	// Content source: either a database kept in sync with the CMS, or a
	// directory of JSON files for deployments without a CMS backend.
	var (
		db     *gorm.DB
		repo   domain.EntryRepository
		source domain.EntrySource
	)

	switch cfg.Content.Source {
	case "files":
		source = store.NewFileSource(cfg.Content.DataDir)
		log.Info("serving content from local files",
			zap.String("data_dir", cfg.Content.DataDir),
		)
	default:
		db, err = postgres.NewConnection(
			postgres.Config{
				Host:         cfg.Database.Host,
				Port:         cfg.Database.Port,
				Name:         cfg.Database.Name,
				User:         cfg.Database.User,
				Password:     cfg.Database.Password,
				SSLMode:      cfg.Database.SSLMode,
				MaxOpenConns: cfg.Database.MaxOpenConns,
				MaxIdleConns: cfg.Database.MaxIdleConns,
				MaxLifetime:  cfg.Database.MaxLifetime,
			},
			log.Logger,
		)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer func() { _ = postgres.Close(db) }()

		if err := migrations.Run(db); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
		log.Info("database migrations completed")

		pgRepo := postgres.NewRepository(db)
		repo = pgRepo
		source = pgRepo
	}

	// Redis backs the distributed refresh lock and the optional cache
	// backend; skip the connection entirely when neither is in play.
	var redisClient *redis.Client
	needRedis := cfg.Strapi.Enabled || (cfg.Cache.Enabled && cfg.Cache.Backend == "redis")
	if needRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		log.Info("connected to Redis",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	}

	// Create cache implementation (optional, based on config)
	var cmsCache domain.Cache
	if cfg.Cache.Enabled {
		switch cfg.Cache.Backend {
		case "redis":
			cmsCache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		default:
			cmsCache = cache.NewMemory(log.Logger)
		}
		log.Info("CMS cache enabled",
			zap.String("backend", cfg.Cache.Backend),
			zap.Duration("ttl", cfg.Cache.TTL),
		)
	} else {
		log.Info("CMS cache disabled")
	}

	// Create CMS clients
	var (
		cmsClient *strapi.Client
		cachedCMS *strapi.CachedClient
	)
	if cfg.Strapi.Enabled {
		cmsClient = strapi.New(
			strapi.Config{
				BaseURL:  cfg.Strapi.BaseURL,
				Token:    cfg.Strapi.Token,
				Timeout:  cfg.Strapi.Timeout,
				MaxPages: cfg.Strapi.MaxPages,
				PageSize: cfg.Strapi.PageSize,
				Retry: strapi.RetryConfig{
					MaxAttempts: cfg.Strapi.Retry.MaxAttempts,
					WaitTime:    cfg.Strapi.Retry.WaitTime,
					MaxWaitTime: cfg.Strapi.Retry.MaxWaitTime,
				},
				CB: strapi.CBConfig{
					MaxRequests:  cfg.Strapi.CB.MaxRequests,
					Interval:     cfg.Strapi.CB.Interval,
					Timeout:      cfg.Strapi.CB.Timeout,
					FailureRatio: cfg.Strapi.CB.FailureRatio,
				},
			},
			log.Logger,
		)
		cachedCMS = strapi.NewCachedClient(cmsClient, cmsCache, cfg.Cache.TTL, log.Logger)
	}

	// Create validator
	v := validator.New()

	// In-memory snapshot served by every content endpoint
	contentStore := store.New(source, v, log.Logger)
	if err := contentStore.Reload(ctx); err != nil {
		// The first sync (or a manual one) fills it in later.
		log.Warn("initial snapshot load failed, starting empty", zap.Error(err))
	}

	// Create services
	contentSvc := service.NewContentService(contentStore, cachedCMS, log.Logger)

	var syncer service.Syncer
	if cmsClient != nil {
		syncer = cmsClient
	}
	syncSvc := service.NewSyncService(syncer, repo, contentStore, log.Logger)

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		contentSvc,
		syncSvc,
		db,
		cmsCache,
		v,
		log.Logger,
	)

	// Start refresh scheduler with distributed locking
	var scheduler *job.RefreshScheduler
	if syncSvc.Available() {
		distLocker := locker.NewRedisLocker(redisClient, log.Logger)

		scheduler = job.NewRefreshScheduler(
			syncSvc,
			job.RefreshConfig{
				Interval:  cfg.Sync.Interval,
				Timeout:   cfg.Sync.Timeout,
				OnStartup: cfg.Sync.OnStartup,
			},
			log.Logger,
			distLocker,
		)
		scheduler.Start(cfg.Sync.OnStartup)
	} else {
		log.Info("refresh scheduler disabled")
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		if scheduler != nil {
			scheduler.Stop()
		}

		// Shutdown server with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
