package middleware

import (
	"net/http"
	"time"

	"authgate/internal/ban"
	pkghttp "authgate/pkg/http"
	pkglogger "authgate/pkg/logger"
)

// BanCheck rejects requests from currently banned clients before any
// credential handling runs. The ordering is deliberate: a banned client must
// not be able to probe the token comparison at all, so the 403 is written
// without ever touching the Authorization header.
func BanCheck(tracker *ban.Tracker, ipConfig *pkghttp.IPConfig, audit *pkglogger.AuditLogger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := pkghttp.ClientIP(r, ipConfig)

			if tracker.IsBanned(clientIP, time.Now()) {
				audit.LogBanRejection(clientIP)
				pkghttp.WriteForbidden(w, "Too many failed attempts. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
