package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS returns a middleware that applies CORS headers for the site frontend.
// Each entry in allowedOrigins must be a full origin (scheme + host).
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-API-Key"},
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
