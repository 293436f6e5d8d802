package api

import (
	"context"
	"net/http"
	"time"

	"storefront/catalog/internal/config"
	"storefront/catalog/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// CatalogService is what the handlers need from the service layer
type CatalogService interface {
	Menus(ctx context.Context) (map[string]domain.NavigationMenu, error)
	Menu(ctx context.Context, rootSlug string) (domain.NavigationMenu, error)
	PrimaryMenus(ctx context.Context) (map[string]domain.NavigationMenu, error)
	Layout(ctx context.Context) (domain.LayoutPlan, error)
	Breadcrumb(ctx context.Context, categoryID string) (string, error)
	CategoryOptions(ctx context.Context) ([]domain.CategoryOption, error)
	RequestRebuild(ctx context.Context, reason string) (string, error)
}

// Server represents the HTTP API server
type Server struct {
	config  config.ServerConfig
	admin   config.AdminConfig
	service CatalogService
	router  *chi.Mux
}

func NewServer(cfg config.ServerConfig, admin config.AdminConfig, service CatalogService) *Server {
	s := &Server{
		config:  cfg,
		admin:   admin,
		service: service,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := s.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Admin-Key", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/navigation", func(r chi.Router) {
			r.Get("/", s.handleListMenus)
			r.Get("/{rootSlug}", s.handleGetMenu)
		})
		r.Get("/primary-navigation", s.handlePrimaryMenus)

		r.Get("/collections/layout", s.handleLayout)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/options", s.handleCategoryOptions)
			r.Get("/{id}/breadcrumb", s.handleBreadcrumb)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdminKey(s.admin.APIKey))
			r.Post("/rebuild", s.handleRebuild)
		})
	})

	s.router = r
}
