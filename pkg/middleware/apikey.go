package middleware

import (
	"crypto/subtle"
	"net/http"

	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

// APIKey guards operator-only routes with a static key in the X-API-Key header.
// An empty configured key disables the routes entirely.
func APIKey(key string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				utils.ResponseNotFound(w, "Not found")
				return
			}

			provided := r.Header.Get("X-API-Key")
			if provided == "" {
				utils.ResponseUnauthorized(w, "Missing API key")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				logger.Warn("Rejected admin request with bad API key",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				utils.ResponseUnauthorized(w, "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
