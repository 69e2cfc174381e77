package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	_ "lunchly/docs"
	"lunchly/internal/api/handler"
	mw "lunchly/internal/api/middleware"
	"lunchly/internal/config"
	"lunchly/internal/domain/customer"
	"lunchly/internal/domain/reservation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const (
	requestTimeout = 60 * time.Second
	healthTimeout  = 2 * time.Second
)

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Dependencies struct {
	CustomerService    customer.CustomerService
	ReservationService reservation.ReservationService
	// RateLimiter is applied to every route when set.
	RateLimiter func(http.Handler) http.Handler
	DB          HealthChecker
}

func SetupRouter(deps Dependencies, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, deps.RateLimiter, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupHealthEndpoint(router, deps.DB)
	setupAuthRoutes(router, cfg, logger)
	setupCustomerRoutes(router, cfg, deps, logger)
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, rateLimiter func(http.Handler) http.Handler, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(requestTimeout))
	if rateLimiter != nil {
		router.Use(rateLimiter)
	}
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupHealthEndpoint(router *chi.Mux, db HealthChecker) {
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupCustomerRoutes(router *chi.Mux, cfg *config.Config, deps Dependencies, logger *slog.Logger) {
	customers := handler.NewCustomerHandler(deps.CustomerService, logger)
	reservations := handler.NewReservationHandler(deps.CustomerService, deps.ReservationService, logger)

	router.Route("/customers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/", customers.ListCustomers)
		r.Post("/", customers.CreateCustomer)
		r.Get("/best", customers.BestCustomers)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", customers.GetCustomer)
			r.Put("/", customers.UpdateCustomer)
			r.Get("/reservations", reservations.ListReservations)
			r.Post("/reservations", reservations.CreateReservation)
		})
	})
}
