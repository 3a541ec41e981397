package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-rentify/internal/config"
	"go-rentify/internal/handler"
	"go-rentify/internal/middleware"
)

// HealthChecker reports whether a backing store is reachable.
type HealthChecker func(ctx context.Context) error

type Handlers struct {
	Auth     *handler.AuthHandler
	Property *handler.PropertyHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers, health ...HealthChecker) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.IsDevelopment()))
	r.Use(middleware.Logging(slog.Default()))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		for _, check := range health {
			if err := check(req.Context()); err != nil {
				slog.Warn("health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.With(authMiddleware.RequireAuth).Get("/logout", h.Auth.Logout)
			auth.With(authMiddleware.RequireAuth).Post("/logout", h.Auth.Logout)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.Post("/register", h.Auth.Register)

		api.Route("/property", func(property chi.Router) {
			owner := authMiddleware.RequireOwner("seller", "sellerId")

			property.Get("/", h.Property.List)
			property.Get("/{sellerId}", h.Property.ListBySeller)
			property.Get("/{sellerId}/{propertyId}", h.Property.Get)
			property.With(owner).Post("/{sellerId}", h.Property.Create)
			property.With(owner).Put("/{sellerId}/{propertyId}", h.Property.Update)
			property.With(owner).Delete("/{sellerId}/{propertyId}", h.Property.Delete)
		})
	})

	return r
}
