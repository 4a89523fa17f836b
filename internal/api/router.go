package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/iammorganparry/memomap/internal/config"
	"github.com/iammorganparry/memomap/internal/memory"
	"github.com/iammorganparry/memomap/internal/store"
	"github.com/iammorganparry/memomap/internal/web"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(
	db *store.DB,
	svc *memory.Service,
	meta *store.MetaStore,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	// Handlers
	healthH := NewHealthHandler(db)
	memoryH := NewMemoryHandler(svc)
	transferH := NewTransferHandler(svc)
	appStateH := NewAppStateHandler(svc, meta, cfg)

	// Unauthenticated routes
	r.Get("/health", healthH.Health)
	r.Handle("/*", web.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(BearerAuth(cfg.APIKey))

		r.Route("/memories", func(r chi.Router) {
			r.Get("/", memoryH.List)
			r.Post("/", memoryH.Create)
			r.Get("/random", memoryH.Random)
			r.Get("/export", transferH.Export)
			r.Post("/import", transferH.Import)
			r.Get("/{id}", memoryH.Get)
			r.Put("/{id}", memoryH.Update)
			r.Delete("/{id}", memoryH.Delete)
		})

		r.Get("/markers", memoryH.Markers)

		r.Route("/app-state", func(r chi.Router) {
			r.Get("/", appStateH.Get)
			r.Post("/welcome", appStateH.MarkWelcomeShown)
		})
	})

	return r
}
