package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/auth"
)

// Pinger reports backing-store liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig contains the handlers and middleware for the API router.
type RouterConfig struct {
	AuthHandler     *AuthHandler
	UserHandler     *UserHandler
	BookHandler     *BookHandler
	BookmarkHandler *BookmarkHandler
	AdminHandler    *AdminHandler
	UploadHandler   *UploadHandler

	AuthMiddleware    func(http.Handler) http.Handler
	MetricsMiddleware func(http.Handler) http.Handler
	RequestTimeout    time.Duration

	DB     Pinger
	Logger zerolog.Logger
}

// NewRouter assembles the API router. Public routes (auth, catalog reads,
// blob retrieval, health) sit outside the auth middleware; everything else
// requires a bearer token, and admin routes additionally require role=admin.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.MetricsMiddleware != nil {
		r.Use(cfg.MetricsMiddleware)
	}

	// Public surface.
	r.Get("/healthz", healthHandler(cfg.DB))
	cfg.AuthHandler.RegisterRoutes(r)
	cfg.BookHandler.RegisterPublicRoutes(r)
	cfg.UploadHandler.RegisterPublicRoutes(r)

	// Token-protected surface.
	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthMiddleware)

		cfg.UserHandler.RegisterRoutes(r)
		cfg.BookHandler.RegisterProtectedRoutes(r)
		cfg.BookmarkHandler.RegisterRoutes(r)
		cfg.UploadHandler.RegisterProtectedRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			cfg.AdminHandler.RegisterRoutes(r)
		})
	})

	return r
}

// healthHandler reports liveness, including a backing-store ping.
func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  "database unreachable",
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// requestLogger logs each request at debug with method, path, status and
// duration.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request handled")
		})
	}
}
