package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/drakoRRR/airport-backend/internal/api"
	"github.com/drakoRRR/airport-backend/internal/cache"
	"github.com/drakoRRR/airport-backend/internal/media"
	"github.com/drakoRRR/airport-backend/internal/storage"
)

const defaultCacheTTL = time.Hour

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	databaseURL := mustEnv("DATABASE_URL")
	redisURL := mustEnv("REDIS_URL")
	mongoURL := mustEnv("MONGO_URL")
	bearerToken := mustEnv("BEARER_TOKEN")
	mongoDB := getEnv("MONGO_DB", "tourbooking")
	port := getEnv("PORT", "8080")
	ttl := cacheTTL(log)

	ctx := context.Background()

	// Connect to PostgreSQL.
	pool, err := storage.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	// Run migrations.
	migrationsDir := "migrations"
	if err := storage.RunMigrations(ctx, pool, migrationsDir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	log.Info("migrations applied")

	// Connect to Redis.
	redisClient, err := cache.Connect(ctx, redisURL)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	// Connect to MongoDB.
	mongoClient, err := media.Connect(ctx, mongoURL)
	if err != nil {
		return fmt.Errorf("connecting to mongo: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	// Wire dependencies.
	tourRepo := storage.NewTourRepository(pool)
	bookingRepo := storage.NewBookingRepository(pool)
	cacheLayer := cache.New(redisClient, ttl)
	mediaStore := media.NewStore(mongoClient.Database(mongoDB))
	aggregator := media.NewAggregator(mediaStore, log)
	handlers := api.NewHandlers(tourRepo, bookingRepo, mediaStore, aggregator, cacheLayer, log)

	// Build router with pingers adapted for health check.
	dbPinger := &pgxPoolPinger{pool: pool}
	redisPinger := &redisPingerAdapter{client: redisClient}
	mongoPinger := &mongoPingerAdapter{client: mongoClient}

	router := api.NewRouter(handlers, bearerToken, dbPinger, redisPinger, mongoPinger, log)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

// cacheTTL reads CACHE_TTL_SECONDS, falling back to one hour.
func cacheTTL(log *slog.Logger) time.Duration {
	raw := os.Getenv("CACHE_TTL_SECONDS")
	if raw == "" {
		return defaultCacheTTL
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		log.Warn("invalid CACHE_TTL_SECONDS, using default", "value", raw)
		return defaultCacheTTL
	}
	return time.Duration(secs) * time.Second
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable not set", "key", key)
		os.Exit(1)
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// pgxPoolPinger adapts pgxpool.Pool to the api pinger interface.
type pgxPoolPinger struct {
	pool interface {
		Ping(ctx context.Context) error
	}
}

func (p *pgxPoolPinger) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// redisPingerAdapter adapts redis.Client to the api pinger interface.
type redisPingerAdapter struct {
	client *redis.Client
}

func (r *redisPingerAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// mongoPingerAdapter adapts mongo.Client to the api pinger interface.
type mongoPingerAdapter struct {
	client *mongo.Client
}

func (m *mongoPingerAdapter) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}
