package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/kainan-pos/api/internal/catalog"
	"github.com/kainan-pos/api/internal/config"
	"github.com/kainan-pos/api/internal/database"
	"github.com/kainan-pos/api/internal/handler"
	mw "github.com/kainan-pos/api/internal/middleware"
	"github.com/kainan-pos/api/internal/order"
	"github.com/kainan-pos/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Applies authentication and terminal scoping middleware as needed.
func New(cfg *config.Config, queries *database.Queries, menu *catalog.Catalog, carts *order.Registry, hub *ws.Hub, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, // terminal UI dev server
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret, logger)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/terminals/{tid}/cart", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Menu (any authenticated terminal)
		menuHandler := handler.NewMenuHandler(menu)
		menuHandler.RegisterRoutes(r)

		// Terminal-scoped routes
		r.Route("/terminals/{tid}", func(r chi.Router) {
			r.Use(mw.RequireTerminal)

			cartHandler := handler.NewCartHandler(carts, hub, logger)
			r.Route("/cart", cartHandler.RegisterRoutes)
		})
	})

	logger.Info("router initialized")
	return r
}
