package routes

import (
	"authgate/internal/ban"
	"authgate/internal/handlers"
	"authgate/internal/middleware"
	pkghttp "authgate/pkg/http"
	pkglogger "authgate/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	validateHandler *handlers.ValidateHandler,
	tracker *ban.Tracker,
	audit *pkglogger.AuditLogger,
	ipConfig *pkghttp.IPConfig,
	rateLimitConfig middleware.RateLimitConfig,
	instanceID string,
) {
	// Liveness stays outside the ban check so probes keep answering
	router.Get("/health", handlers.Health(instanceID))

	// Validation goes through flood control and the ban check before the
	// handler ever reads the Authorization header
	router.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(rateLimitConfig))
		r.Use(middleware.BanCheck(tracker, ipConfig, audit))
		r.Get("/validate", validateHandler.Validate)
	})
}
