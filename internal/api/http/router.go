package httpapi

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"notes-client/internal/api/http/middleware"
	"notes-client/internal/config"
)

// NewRouter собирает mux с маршрутами и middleware.
// Порядок выполнения: CORS -> Logging -> RateLimit -> маршруты.
func NewRouter(h *Handler, cfg *config.ConfigHTTP, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	h.Register(mux)

	var handler http.Handler = mux
	handler = middleware.RateLimit(handler, cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	handler = middleware.Logging(handler, logger)
	handler = setupCORS(cfg).Handler(handler)

	logger.Info("CORS enabled", "origins", cfg.CORSAllowedOrigins)
	return handler
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(cfg *config.ConfigHTTP) *cors.Cors {
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	maxAge := cfg.CORSMaxAge
	if maxAge == 0 {
		maxAge = 86400
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "X-Requested-With"},
		MaxAge:         maxAge,
	})
}
