// Package rest serves the article operations as a JSON HTTP API, for local
// development and for an HTTP API Lambda.
package rest

import (
	"net/http"

	"wikicollector-backend/application/services"
	"wikicollector-backend/interfaces/appsync"
	"wikicollector-backend/interfaces/http/rest/handlers"
	"wikicollector-backend/interfaces/http/rest/middleware"
	"wikicollector-backend/pkg/auth"
	"wikicollector-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	resolver   *appsync.Resolver
	reconciler *services.ReconciliationService
	validator  *auth.JWTValidator
	collector  *observability.HTTPCollector
	enableCORS bool
	logger     *zap.Logger
}

// NewRouter creates a new router instance. validator may be nil when every
// request is authorized by API Gateway.
func NewRouter(
	resolver *appsync.Resolver,
	reconciler *services.ReconciliationService,
	validator *auth.JWTValidator,
	collector *observability.HTTPCollector,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		resolver:   resolver,
		reconciler: reconciler,
		validator:  validator,
		collector:  collector,
		enableCORS: enableCORS,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.collector))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.amplifyapp.com"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Method(http.MethodGet, "/metrics", rt.collector.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))

		articleHandler := handlers.NewArticleHandler(rt.resolver, rt.logger)
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", articleHandler.ListArticles)
			r.Post("/", articleHandler.CreateArticle)
			r.Get("/{articleID}", articleHandler.GetArticle)
			r.Put("/{articleID}", articleHandler.UpdateArticle)
			r.Delete("/{articleID}", articleHandler.DeleteArticle)
		})
		r.Get("/search", articleHandler.Search)
		r.Post("/uploads", articleHandler.IssueUploadURL)

		r.Post("/admin/reconcile", handlers.NewAdminHandler(rt.reconciler, rt.logger).Reconcile)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
