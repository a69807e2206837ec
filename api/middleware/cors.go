package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/ferabensrl/mare-pedidos-backend/pkg/config"
)

// CORS returns middleware that applies the API's allowed origin policy.
// X-Session-Id is both accepted and exposed so browser clients can
// carry their session across requests.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Session-Id", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Session-Id", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
