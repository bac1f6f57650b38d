package middleware

import "net/http"

// SecurityHeadersConfig holds security headers configuration
type SecurityHeadersConfig struct {
	Env string
}

// SecurityHeaders returns a middleware that adds security headers to all
// responses. The gateway serves JSON only, so the set is smaller than a
// browser-facing app would carry; Cache-Control matters most here because
// validation responses must never be served from an intermediary cache.
func SecurityHeaders(config SecurityHeadersConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// nosniff prevents browsers from MIME-sniffing a response away
			// from the declared Content-Type
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// The gateway never renders in a frame
			w.Header().Set("X-Frame-Options", "DENY")

			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// Auth decisions are per-request; caching one would replay it
			w.Header().Set("Cache-Control", "no-store")

			// HSTS only when the proxy terminated TLS in production
			if config.Env == "production" && (r.Header.Get("X-Forwarded-Proto") == "https" || r.URL.Scheme == "https") {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
