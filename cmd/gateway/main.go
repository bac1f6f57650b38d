package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"authgate/internal/auth"
	"authgate/internal/ban"
	"authgate/internal/config"
	"authgate/internal/handlers"
	middlewareCustom "authgate/internal/middleware"
	"authgate/internal/routes"
	pkghttp "authgate/pkg/http"
	pkglogger "authgate/pkg/logger"
	"authgate/pkg/netutil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	instanceID := uuid.NewString()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	})).With(slog.String("instance_id", instanceID))
	slog.SetDefault(logger)

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	port, err := resolvePort(cfg.Server.Port)
	if err != nil {
		logger.Error("failed to resolve listen port", slog.Any("error", err))
		os.Exit(1)
	}

	// Ban tracking owns all failure/ban state; constructed once here and
	// injected everywhere it is consulted
	tracker := ban.NewTracker(ban.DefaultConfig(), logger)
	validator := auth.NewSecretValidator(cfg.Auth.Token)
	auditLogger := pkglogger.NewAuditLogger(logger)

	ipConfig := &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}

	validateHandler := handlers.NewValidateHandler(validator, tracker, auditLogger, ipConfig)

	// Setup CORS middleware
	corsConfig := middlewareCustom.DefaultCORSConfig(cfg.Server.Env)
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins
	}

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middlewareCustom.Recoverer(logger, cfg.Debug()))
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router, validateHandler, tracker, auditLogger, ipConfig,
		middlewareCustom.RateLimitConfig{RequestsPerMinute: cfg.Server.RateLimitPerMinute},
		instanceID)

	// Create server
	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// resolvePort turns the configured PORT into a concrete port number.
// "auto" picks the first free port from 8000, matching the deployment
// scripts that probed for one.
func resolvePort(configured string) (int, error) {
	if configured == "auto" {
		return netutil.FindAvailablePort("", 8000)
	}
	return strconv.Atoi(configured)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
