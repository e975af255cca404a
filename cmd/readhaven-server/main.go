// Package main is the entry point for the ReadHaven API server.
// ReadHaven is a book-library backend: a REST API for browsing and uploading
// books, saving URL bookmarks, and managing reader profiles, guarded by a
// stateless JWT authentication boundary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/auth"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/cache"
	memorycache "github.com/Ilaiyarasan2005/Read-Haven/internal/cache/memory"
	rediscache "github.com/Ilaiyarasan2005/Read-Haven/internal/cache/redis"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/config"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/handler"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/limiter"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/metrics"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/repository"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/repository/postgres"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/repository/sqlite"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/service"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/storage"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logging)
	log.Logger = logger

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting ReadHaven server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

// run wires the application and serves until the context is cancelled.
func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	// Database and repositories.
	var (
		userRepo     repository.UserRepository
		bookRepo     repository.BookRepository
		bookmarkRepo repository.BookmarkRepository
		dbPinger     handler.Pinger
	)

	if cfg.Database.IsEmbedded() {
		sqliteCfg := sqlite.DefaultConfig(cfg.Database.Path)
		sqliteCfg.JournalMode = cfg.Database.JournalMode
		sqliteCfg.BusyTimeout = cfg.Database.BusyTimeout
		sqliteCfg.CacheSize = cfg.Database.CacheSize
		sqliteCfg.SynchronousMode = cfg.Database.SynchronousMode

		db, err := sqlite.NewDB(ctx, sqliteCfg, logger)
		if err != nil {
			return fmt.Errorf("failed to open sqlite database: %w", err)
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate sqlite database: %w", err)
		}

		userRepo = sqlite.NewUserRepository(db)
		bookRepo = sqlite.NewBookRepository(db)
		bookmarkRepo = sqlite.NewBookmarkRepository(db)
		dbPinger = db
	} else {
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to open postgres database: %w", err)
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate postgres database: %w", err)
		}

		userRepo = postgres.NewUserRepository(db)
		bookRepo = postgres.NewBookRepository(db)
		bookmarkRepo = postgres.NewBookmarkRepository(db)
		dbPinger = db
	}

	// Redis, when enabled, backs the login limiter and the stats cache so
	// multiple instances share state.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:        cfg.Redis.Addr(),
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			PoolSize:    cfg.Redis.PoolSize,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info().Str("addr", cfg.Redis.Addr()).Msg("connected to redis")
	}

	var attemptLimiter limiter.AttemptLimiter = limiter.NewNoOpLimiter()
	if cfg.RateLimit.Enabled {
		limitCfg := limiter.Config{
			MaxAttempts: cfg.RateLimit.MaxAttempts,
			Window:      cfg.RateLimit.Window,
		}
		if redisClient != nil {
			attemptLimiter = limiter.NewRedisLimiter(redisClient, limitCfg)
		} else {
			attemptLimiter = limiter.NewMemoryLimiter(limitCfg)
		}
	}

	var statsCache cache.Cache
	if redisClient != nil {
		statsCache = rediscache.NewCache(redisClient)
	} else {
		memCache := memorycache.NewCache()
		defer memCache.Stop()
		statsCache = memCache
	}

	// Blob storage for cover images and avatars.
	var blobBackend storage.Backend
	switch cfg.Uploads.Backend {
	case "s3":
		s3Backend, err := storage.NewS3Backend(ctx, storage.S3Config{
			Endpoint:        cfg.Uploads.S3.Endpoint,
			Region:          cfg.Uploads.S3.Region,
			Bucket:          cfg.Uploads.S3.Bucket,
			AccessKeyID:     cfg.Uploads.S3.AccessKeyID,
			SecretAccessKey: cfg.Uploads.S3.SecretAccessKey,
			UsePathStyle:    cfg.Uploads.S3.UsePathStyle,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to create s3 storage backend: %w", err)
		}
		blobBackend = s3Backend
	default:
		fsBackend, err := storage.NewFilesystemBackend(cfg.Uploads.DataDir, logger)
		if err != nil {
			return fmt.Errorf("failed to create filesystem storage backend: %w", err)
		}
		blobBackend = fsBackend
	}

	// Services.
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost, logger)
	bookService := service.NewBookService(bookRepo, logger)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, logger)
	statsService := service.NewStatsService(userRepo, bookRepo, bookmarkRepo, statsCache, logger)

	// Authentication.
	codec := auth.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	adminCreds := auth.AdminCredentials{
		Username: cfg.Auth.AdminUsername,
		Password: cfg.Auth.AdminPassword,
	}
	if !adminCreds.Enabled() {
		logger.Warn().Msg("admin credentials not configured, admin login disabled")
	}

	// Metrics on a separate listener.
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		go serveMetrics(cfg.Metrics, m, logger)
	}

	// Handlers and router.
	authHandler := handler.NewAuthHandler(handler.AuthHandlerConfig{
		UserService: userService,
		Codec:       codec,
		AdminCreds:  adminCreds,
		Limiter:     attemptLimiter,
		Metrics:     m,
		Logger:      logger,
	})

	var metricsMiddleware func(http.Handler) http.Handler
	if m != nil {
		metricsMiddleware = m.Middleware
	}

	router := handler.NewRouter(handler.RouterConfig{
		AuthHandler:       authHandler,
		UserHandler:       handler.NewUserHandler(userService, logger),
		BookHandler:       handler.NewBookHandler(bookService, logger),
		BookmarkHandler:   handler.NewBookmarkHandler(bookmarkService, logger),
		AdminHandler:      handler.NewAdminHandler(statsService, userService, logger),
		UploadHandler:     handler.NewUploadHandler(blobBackend, cfg.Uploads.MaxSize, logger),
		AuthMiddleware:    auth.Middleware(codec),
		MetricsMiddleware: metricsMiddleware,
		RequestTimeout:    cfg.Server.RequestTimeout,
		DB:                dbPinger,
		Logger:            logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

// serveMetrics runs the Prometheus scrape endpoint on its own port so the
// public API surface never exposes it.
func serveMetrics(cfg config.MetricsConfig, m *metrics.Metrics, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, m.Handler())

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info().Str("addr", addr).Str("path", cfg.Path).Msg("metrics listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("metrics server failed")
	}
}

// setupLogger builds the root logger from configuration.
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = cfg.TimeFormat

	var out = os.Stdout
	if cfg.Output == "stderr" {
		out = os.Stderr
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(out)
	}

	return logger.Level(level).With().Timestamp().Logger()
}
