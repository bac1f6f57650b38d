package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	pkghttp "authgate/pkg/http"
)

// Recoverer converts panics into a generic JSON 500. The underlying error is
// always logged but only echoed to the client when debug is enabled, so an
// internal fault cannot leak implementation detail to an unauthenticated
// caller.
func Recoverer(logger *slog.Logger, debugMode bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic while processing request",
						slog.Any("error", rec),
						slog.String("path", r.URL.Path),
						slog.String("remote_addr", r.RemoteAddr),
						slog.String("stack", string(debug.Stack())))

					detail := "An unexpected error occurred"
					if debugMode {
						detail = fmt.Sprintf("%v", rec)
					}
					pkghttp.WriteInternalError(w, detail)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
