package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HammerMeetNail/fitrank/internal/config"
	"github.com/HammerMeetNail/fitrank/internal/database"
	"github.com/HammerMeetNail/fitrank/internal/handlers"
	"github.com/HammerMeetNail/fitrank/internal/logging"
	"github.com/HammerMeetNail/fitrank/internal/middleware"
	"github.com/HammerMeetNail/fitrank/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", logging.Fields{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	logger.SetLevel(level)
	logging.SetDefaultLevel(level)

	loc, err := cfg.Server.Location()
	if err != nil {
		return err
	}
	now := func() time.Time { return time.Now().In(loc) }

	logger.Info("Starting fitrank server...", logging.Fields{
		"env":      cfg.Server.Environment,
		"timezone": loc.String(),
	})

	logger.Info("Connecting to PostgreSQL", logging.Fields{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	poolOpts := database.DefaultPoolOptions()
	poolOpts.MaxConns = int32(cfg.Database.MaxConns)
	poolOpts.MinConns = int32(cfg.Database.MinConns)
	db, err := database.NewPostgresDB(cfg.Database.DSN(), poolOpts)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN(), cfg.Server.MigrationsPath)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	// Redis only backs the rate limiter; without it buckets stay in-process.
	var redisDB *database.RedisDB
	var redisHealth handlers.HealthChecker
	if cfg.Redis.Enabled {
		logger.Info("Connecting to Redis", logging.Fields{"addr": cfg.Redis.Addr()})
		redisDB, err = database.NewRedisDB(database.RedisOptions{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisDB.Close() }()
		redisHealth = redisDB
		logger.Info("Connected to Redis")
	}

	registry := prometheus.DefaultRegisterer
	svc := services.New(services.NewPoolAdapter(db.Pool), now, services.NewMetrics(registry))

	api := &handlers.Handlers{
		Health:     handlers.NewHealthHandler(db, redisHealth),
		Users:      handlers.NewUserHandler(svc.Users, svc.Scores, now),
		Records:    handlers.NewRecordHandler(svc.Records),
		Statistics: handlers.NewStatisticsHandler(svc.Statistics),
		Friends:    handlers.NewFriendHandler(svc.Friends, svc.Leaderboard),
	}

	mux := http.NewServeMux()
	api.Register(mux)
	mux.Handle("GET /metrics", middleware.BasicAuth(cfg.Metrics.Username, cfg.Metrics.Password, promhttp.Handler()))
	if !cfg.Metrics.AuthEnabled() {
		logger.Warn("Metrics endpoint is not protected; set METRICS_USERNAME and METRICS_PASSWORD")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Build middleware chain (innermost first). Metrics wraps the mux
	// directly so it can read the matched pattern.
	var handler http.Handler = mux
	handler = middleware.NewHTTPMetrics(registry).Apply(handler)
	if cfg.RateLimit.Enabled {
		client := redisClient(redisDB)
		limiter := middleware.NewRateLimiter(client, cfg.RateLimit.Requests, cfg.RateLimit.Window, "ratelimit:api:", apiClientKey(cfg.RateLimit.TrustedProxies)).
			WithLogger(logger)
		go limiter.RunPruner(ctx)
		handler = limiter.Middleware(handler)
	}
	handler = middleware.NewSecurityHeaders(cfg.Server.Environment == "production").Apply(handler)
	handler = gorillahandlers.CompressHandler(handler)
	handler = gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.Server.CORSOrigins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "X-Request-ID"}),
	)(handler)
	handler = middleware.NewRequestLogger(logger).Apply(handler)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		logger.Info("Server is shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Could not gracefully shutdown the server")
		}
		close(done)
	}()

	logger.Info("Server listening", logging.Fields{"addr": server.Addr})
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
