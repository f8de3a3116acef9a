package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/morphergyx/inquiry-api/internal/auth"
	"github.com/morphergyx/inquiry-api/internal/config"
	"github.com/morphergyx/inquiry-api/internal/database"
	"github.com/morphergyx/inquiry-api/internal/http/handler"
	"github.com/morphergyx/inquiry-api/internal/http/middleware"
	"github.com/morphergyx/inquiry-api/internal/metrics"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/morphergyx/inquiry-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	db             *gorm.DB
	metrics        *metrics.Metrics
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	inquiryHandler *handler.InquiryHandler
	authHandler    *handler.AuthHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	m *metrics.Metrics,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	inquiryHandler *handler.InquiryHandler,
	authHandler *handler.AuthHandler,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		metrics:        m,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		inquiryHandler: inquiryHandler,
		authHandler:    authHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	if rt.cfg.Server.EnableMetrics {
		r.Use(middleware.Metrics(rt.metrics))
	}
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"type":   "not_found",
			"title":  http.StatusText(http.StatusNotFound),
			"status": http.StatusNotFound,
			"detail": "Route not found",
		})
	})

	// Health check (basic liveness probe)
	r.Get("/health", rt.health)
	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", rt.healthDB)
	r.Get("/health/ready", rt.healthReady)

	if rt.cfg.Server.EnableMetrics {
		r.Handle("/metrics", rt.metrics.Handler())
	}

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", rt.authHandler.Login)
			r.Get("/verify", rt.authHandler.Verify)
		})

		r.Route("/inquiries", func(r chi.Router) {
			// Public submission from the website form
			r.With(rt.rateLimiter.LimitSubmissions, rt.authMiddleware.OptionalAuthenticate).Post("/", rt.inquiryHandler.Create)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.Authenticate)
				r.Use(rt.authMiddleware.RequireRole(auth.RoleAdmin))

				r.Get("/", rt.inquiryHandler.List)
				r.Get("/stats", rt.inquiryHandler.Stats)
				r.Get("/{id}", rt.inquiryHandler.GetByID)
				r.Patch("/{id}", rt.inquiryHandler.Update)
				r.Delete("/{id}", rt.inquiryHandler.Delete)
				r.Post("/{id}/notes", rt.inquiryHandler.AddNote)
			})
		})
	})

	return r
}

func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"service":     rt.cfg.App.Name,
		"environment": rt.cfg.App.Environment,
	})
}

func (rt *Router) healthDB(w http.ResponseWriter, r *http.Request) {
	stats, err := database.HealthCheckWithStats(rt.db)
	if err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"service": "database",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"driver":  rt.cfg.Database.Driver,
		"stats": map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		},
	})
}

// healthReady reports every dependency the API needs to serve requests
func (rt *Router) healthReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	status := http.StatusOK

	if err := database.HealthCheck(rt.db); err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		checks["database"] = "unhealthy"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "healthy"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": overall,
		"checks": checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
