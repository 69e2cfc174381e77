package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lunchly/internal/api"
	"lunchly/internal/api/middleware"
	"lunchly/internal/batch"
	"lunchly/internal/config"
	"lunchly/internal/domain/customer"
	"lunchly/internal/domain/reservation"
	"lunchly/internal/event"
	"lunchly/internal/infrastructure/database/postgres"
	"lunchly/internal/infrastructure/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const (
	rabbitMQConnectAttempts = 5
	defaultStatsSchedule    = "*/15 * * * *"
	defaultStatsTimeout     = time.Minute
	shutdownTimeout         = 15 * time.Second
)

type services struct {
	customerRepo       *postgres.CustomerRepository
	customerService    customer.CustomerService
	reservationService reservation.ReservationService
}

// @title Lunchly API
// @version 1.0
// @description Customer and reservation API for the Lunchly restaurant.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	dbPool := initializeDatabase(appCtx, cfg, logger)
	defer closeDatabase(dbPool, logger)

	rabbitMQConn, err := setupRabbitMQ(cfg, logger)
	if err != nil {
		logger.Warn("Continuing without RabbitMQ; domain events will be dropped", "error", err)
	}
	publisher := initializeEventPublisher(cfg, rabbitMQConn, logger)

	redisClient := initializeRedisClient(cfg, logger)
	rateLimiter := initializeRateLimiter(appCtx, cfg, redisClient, logger)

	svc := initializeServices(dbPool, publisher, logger)
	statsJob := batch.NewCustomerStatsJob(svc.customerRepo, logger)
	cronScheduler := startBatchJobs(cfg, logger, statsJob)

	router := api.SetupRouter(api.Dependencies{
		CustomerService:    svc.customerService,
		ReservationService: svc.reservationService,
		RateLimiter:        rateLimiter,
		DB:                 dbPool,
	}, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitMQConn, redisClient, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())
	if cfg.Server.Auth.Enabled && cfg.Server.Auth.JWTSecret == "" {
		logger.Warn("Auth is enabled but no JWT secret is configured")
	}

	return cfg, logger
}

func initializeDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

func initializeEventPublisher(cfg *config.Config, conn *amqp.Connection, logger *slog.Logger) event.EventPublisher {
	if conn == nil {
		return event.NewNoopPublisher(logger)
	}
	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Warn("Failed to set up RabbitMQ publisher; domain events will be dropped", "error", err)
		return event.NewNoopPublisher(logger)
	}
	return publisher
}

func initializeServices(dbPool *pgxpool.Pool, publisher event.EventPublisher, logger *slog.Logger) services {
	logger.Info("Initializing application components...")
	reservationRepo := postgres.NewReservationRepository(dbPool, logger)
	customerRepo := postgres.NewCustomerRepository(dbPool, reservationRepo, logger)

	return services{
		customerRepo:       customerRepo,
		customerService:    customer.NewCustomerService(customerRepo, publisher, logger),
		reservationService: reservation.NewReservationService(reservationRepo, publisher, logger),
	}
}

// initializeRateLimiter prefers the shared Redis window and falls back to the
// in-process limiter when no Redis client is available.
func initializeRateLimiter(ctx context.Context, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Server.RateLimit.Enabled {
		logger.Info("Rate limiting is disabled via configuration")
		return nil
	}
	if redisClient != nil {
		return middleware.NewRedisRateLimiterMiddleware(cfg.Server.RateLimit, redisClient, logger).Middleware
	}
	return middleware.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, logger).Middleware
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", srv.Addr)
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
			return
		}
		logger.Info("Server closed gracefully.")
		serverErrors <- nil
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitConn *amqp.Connection, redisClient *redis.Client,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	triggerReason, serverDone := waitForShutdownTrigger(shutdownChan, serverErrors, logger)

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCronScheduler(cronScheduler, logger)
	if !serverDone {
		shutdownHTTPServer(srv, serverErrors, logger)
	}
	closeRabbitMQConnection(rabbitConn, logger)
	closeRedisClient(redisClient, logger)

	logger.Info("Application shutdown process complete.")
}

func waitForShutdownTrigger(shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) (string, bool) {
	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
		return "signal: " + sig.String(), false
	case err := <-serverErrors:
		if err != nil {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			return "server error", true
		}
		logger.Info("Server goroutine finished before signal.")
		return "server exited", true
	}
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(shutdownTimeout):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	select {
	case err := <-serverErrors:
		if err != nil {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	if rabbitConn == nil {
		logger.Info("RabbitMQ connection was not established, skipping close.")
		return
	}
	if rabbitConn.IsClosed() {
		logger.Info("RabbitMQ connection already closed, skipping close.")
		return
	}
	if err := rabbitConn.Close(); err != nil {
		logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
		return
	}
	logger.Info("RabbitMQ connection closed.")
}

// initializeRedisClient returns nil when Redis is not configured or not
// reachable, which selects the in-process rate limiter.
func initializeRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		logger.Info("Redis address not configured, using in-process rate limiting")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Failed to connect to Redis, using in-process rate limiting", "error", err, "addr", cfg.Redis.Addr)
		_ = rdb.Close()
		return nil
	}

	logger.Info("Redis client connected", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return rdb
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		return
	}
	logger.Info("Closing Redis client connection...")
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close Redis client connection gracefully", "error", err)
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, statsJob *batch.CustomerStatsJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.CustomerStatsSchedule
	if scheduleSpec == "" {
		scheduleSpec = defaultStatsSchedule
		logger.Warn("Customer stats schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := statsJobTimeout(cfg.Batch)

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "CustomerStats")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := statsJob.Run(ctx); runErr != nil {
			jobLogger.Error("Customer stats job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule customer stats job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled customer stats job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func statsJobTimeout(cfg config.BatchConfig) time.Duration {
	if cfg.CustomerStatsTimeoutSeconds <= 0 {
		return defaultStatsTimeout
	}
	return time.Duration(cfg.CustomerStatsTimeoutSeconds) * time.Second
}

func rabbitMQURI(cfg config.RabbitMQConfig) (string, error) {
	if cfg.Host == "" {
		return "", fmt.Errorf("RabbitMQ host is not configured")
	}
	if (cfg.Username == "") != (cfg.Password == "") {
		return "", fmt.Errorf("RabbitMQ username and password must be provided together")
	}

	uri := amqp.URI{
		Scheme:   "amqp",
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		Vhost:    "/",
	}
	if uri.Port == 0 {
		uri.Port = 5672
	}
	return uri.String(), nil
}

func connectRabbitMQ(uri string, attempts int, backoff time.Duration, logger *slog.Logger) (*amqp.Connection, error) {
	var err error
	for i := 1; i <= attempts; i++ {
		var conn *amqp.Connection
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")
			go watchRabbitMQConnection(conn, logger)
			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", attempts),
			slog.Any("error", err),
		)
		if i < attempts {
			time.Sleep(time.Duration(i) * backoff)
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempts, err)
}

func watchRabbitMQConnection(conn *amqp.Connection, logger *slog.Logger) {
	blockChan := conn.NotifyBlocked(make(chan amqp.Blocking, 1))
	closeChan := conn.NotifyClose(make(chan *amqp.Error, 1))
	watchConnectionEvents(blockChan, closeChan, logger)
}

// watchConnectionEvents drains blocked notices until the connection closes.
// amqp091 delivers them synchronously from its reader goroutine.
func watchConnectionEvents(blockChan <-chan amqp.Blocking, closeChan <-chan *amqp.Error, logger *slog.Logger) {
	for {
		select {
		case b, ok := <-blockChan:
			if !ok {
				return
			}
			if b.Active {
				logger.Warn("RabbitMQ connection blocked", "reason", b.Reason)
			} else {
				logger.Info("RabbitMQ connection unblocked")
			}
		case e, ok := <-closeChan:
			if ok && e != nil {
				logger.Error("RabbitMQ connection closed", slog.Any("error", e))
			}
			return
		}
	}
}

func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) (*amqp.Connection, error) {
	uri, err := rabbitMQURI(cfg.RabbitMQ)
	if err != nil {
		return nil, err
	}
	return connectRabbitMQ(uri, rabbitMQConnectAttempts, 2*time.Second, logger)
}
