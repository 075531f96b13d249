package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/firelane/safecover/internal"
	"github.com/firelane/safecover/internal/handler"
	"github.com/firelane/safecover/internal/metrics"
	"github.com/firelane/safecover/internal/middleware"
	"github.com/firelane/safecover/internal/report"
	"github.com/firelane/safecover/internal/repository"
	"github.com/firelane/safecover/internal/schema"
	"github.com/firelane/safecover/internal/service"
	"github.com/firelane/safecover/internal/storage"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database connection
	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	if err := internal.RunMigrations(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database ready")

	// Initialize repository and coverage schemas
	repo := repository.New(db)
	registry, err := schema.New()
	if err != nil {
		return fmt.Errorf("schema registry initialization failed: %w", err)
	}

	// Initialize enclosure storage
	store, err := newStorage(cfg, logger)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}

	// Initialize services
	employeeService := service.NewEmployeeService(repo, logger)
	requestService := service.NewRequestService(repo, registry, logger)
	composer := report.NewComposer(registry)

	// Initialize handlers
	employeeHandler := handler.NewEmployeeHandler(employeeService, logger)
	requestHandler := handler.NewRequestHandler(requestService, registry, composer, store, logger)

	// Login gets a rate limit on top of the shared middleware stack.
	loginLimiter := middleware.NewLoginRateLimiter(logger)
	limitLogin := middleware.NewRateLimitMiddleware(loginLimiter, logger).Limit

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics (optionally behind basic auth)
	metricsAuth := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)
	mux.Handle("GET /metrics", metricsAuth.Handler(promhttp.Handler()))

	// API routes
	employeeHandler.RegisterRoutes(mux, limitLogin)
	requestHandler.RegisterRoutes(mux)

	// Assemble middleware stack
	isSecure := cfg.Env != "development"
	security := middleware.NewSecurityHeadersMiddleware(isSecure)
	logging := middleware.NewRequestLoggingMiddleware(logger)

	var root http.Handler = mux
	root = metrics.Middleware(root)
	root = logging.Handler(root)
	root = security.Handler(root)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: root,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

// newStorage builds the enclosure store from configuration.
func newStorage(cfg *internal.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageProvider {
	case storage.ProviderS3:
		return storage.NewS3Storage(storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			BucketName:      cfg.S3BucketName,
			Region:          cfg.S3Region,
		}, logger)
	default:
		return storage.NewLocalStorage(storage.LocalConfig{
			BasePath: cfg.LocalStoragePath,
			BaseURL:  cfg.LocalStorageURL,
		}, logger)
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
