package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/config"
	"github.com/labaid/labaid-api/internal/database"
	"github.com/labaid/labaid-api/internal/http/handler"
	"github.com/labaid/labaid-api/internal/http/middleware"
	"github.com/labaid/labaid-api/internal/metrics"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/labaid/labaid-api/docs" // Import generated swagger docs
)

// Handlers bundles the HTTP handlers mounted under /api
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Lab          *handler.LabHandler
	Fluorochrome *handler.FluorochromeHandler
	Antibody     *handler.AntibodyHandler
	Lot          *handler.LotHandler
	Vial         *handler.VialHandler
	Storage      *handler.StorageHandler
	Audit        *handler.AuditHandler
	Ticket       *handler.TicketHandler
	Document     *handler.DocumentHandler
	Dashboard    *handler.DashboardHandler
}

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	metrics             *metrics.Metrics
	authMiddleware      *auth.Middleware
	labFilterMiddleware *middleware.LabFilterMiddleware
	rateLimiter         *middleware.RateLimiter
	h                   Handlers
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	m *metrics.Metrics,
	authMiddleware *auth.Middleware,
	labFilterMiddleware *middleware.LabFilterMiddleware,
	rateLimiter *middleware.RateLimiter,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		metrics:             m,
		authMiddleware:      authMiddleware,
		labFilterMiddleware: labFilterMiddleware,
		rateLimiter:         rateLimiter,
		h:                   handlers,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.RequestContext)
	r.Use(middleware.Logging(rt.logger))
	if rt.metrics != nil {
		r.Use(middleware.Metrics(rt.metrics))
	}
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Liveness
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/health/db", rt.databaseHealth)
	r.Get("/health/ready", rt.readiness)

	if rt.metrics != nil && rt.cfg.Metrics.Enabled {
		r.Method(http.MethodGet, rt.cfg.Metrics.Path, rt.metrics.Handler())
	}

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api", func(r chi.Router) {
		r.With(rt.rateLimiter.LimitLogin).Post("/auth/login", rt.h.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Reachable while a password change is pending
			r.Get("/auth/me", rt.h.Auth.Me)
			r.Post("/auth/change-password", rt.h.Auth.ChangePassword)
			r.Post("/auth/logout", rt.h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequirePasswordCurrent)
				r.Use(rt.labFilterMiddleware.Filter)
				r.Use(rt.rateLimiter.Limit)

				rt.mountUsers(r)
				rt.mountLabs(r)
				rt.mountCatalog(r)
				rt.mountInventory(r)
				rt.mountStorage(r)
				rt.mountAudit(r)
				rt.mountSupport(r)
			})
		})
	})

	return r
}

func (rt *Router) require(p auth.Permission) func(http.Handler) http.Handler {
	return rt.authMiddleware.RequirePermission(p)
}

func (rt *Router) mountUsers(r chi.Router) {
	r.Route("/auth/users", func(r chi.Router) {
		r.Use(rt.require(auth.PermissionUsersManage))
		r.Get("/", rt.h.User.List)
		r.Post("/", rt.h.User.Create)
		r.Patch("/{id}", rt.h.User.Update)
		r.Post("/{id}/reset-password", rt.h.User.ResetPassword)
	})
}

func (rt *Router) mountLabs(r chi.Router) {
	r.Route("/labs", func(r chi.Router) {
		r.Get("/", rt.h.Lab.List)
		r.With(rt.require(auth.PermissionLabSettings)).Patch("/{id}/settings", rt.h.Lab.UpdateSettings)

		r.Group(func(r chi.Router) {
			r.Use(rt.require(auth.PermissionLabsManage))
			r.Post("/", rt.h.Lab.Create)
			r.Patch("/{id}", rt.h.Lab.Update)
			r.Post("/{id}/suspend", rt.h.Lab.Suspend)
			r.Post("/{id}/reactivate", rt.h.Lab.Reactivate)
		})
	})
}

func (rt *Router) mountCatalog(r chi.Router) {
	read := rt.require(auth.PermissionInventoryRead)
	write := rt.require(auth.PermissionCatalogWrite)

	r.Route("/fluorochromes", func(r chi.Router) {
		r.With(read).Get("/", rt.h.Fluorochrome.List)
		r.With(write).Post("/", rt.h.Fluorochrome.Create)
		r.With(write).Patch("/{id}", rt.h.Fluorochrome.Update)
		r.With(write).Delete("/{id}", rt.h.Fluorochrome.Delete)
	})

	r.Route("/antibodies", func(r chi.Router) {
		r.With(read).Get("/", rt.h.Antibody.List)
		r.With(read).Get("/{id}", rt.h.Antibody.Get)
		r.With(write).Post("/", rt.h.Antibody.Create)
		r.With(write).Patch("/{id}", rt.h.Antibody.Update)
		r.With(write).Post("/{id}/archive", rt.h.Antibody.Archive)
	})
}

func (rt *Router) mountInventory(r chi.Router) {
	read := rt.require(auth.PermissionInventoryRead)
	write := rt.require(auth.PermissionInventoryWrite)

	r.Route("/lots", func(r chi.Router) {
		r.With(read).Get("/", rt.h.Lot.List)
		r.With(read).Get("/barcode/{barcode}", rt.h.Lot.FindByBarcode)
		r.With(read).Get("/{id}", rt.h.Lot.Get)
		r.With(write).Post("/", rt.h.Lot.Create)
		r.With(write).Patch("/{id}", rt.h.Lot.Update)
		r.With(write).Post("/{id}/vials", rt.h.Lot.Receive)
		r.With(write).Post("/{id}/deplete-all", rt.h.Lot.DepleteAll)
		r.With(rt.require(auth.PermissionCatalogWrite)).Post("/{id}/archive", rt.h.Lot.Archive)
		r.With(rt.require(auth.PermissionQCApprove)).Patch("/{id}/qc", rt.h.Lot.UpdateQCStatus)

		r.With(read).Get("/{id}/documents", rt.h.Document.ListByLot)
		r.With(rt.require(auth.PermissionDocumentsWrite)).Post("/{id}/documents", rt.h.Document.Upload)
	})

	r.Route("/vials", func(r chi.Router) {
		r.With(read).Get("/", rt.h.Vial.List)
		r.With(write).Post("/move", rt.h.Vial.Move)
		r.With(read).Get("/{id}", rt.h.Vial.Get)
		r.With(write).Post("/{id}/open", rt.h.Vial.Open)
		r.With(write).Post("/{id}/deplete", rt.h.Vial.Deplete)
		r.With(write).Post("/{id}/return-to-storage", rt.h.Vial.ReturnToStorage)
	})

	r.Route("/documents", func(r chi.Router) {
		r.With(read).Get("/{id}/download", rt.h.Document.Download)
		r.With(rt.require(auth.PermissionDocumentsDelete)).Delete("/{id}", rt.h.Document.Delete)
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(read)
		r.Get("/summary", rt.h.Dashboard.Summary)
		r.Get("/inventory/export", rt.h.Dashboard.InventoryExport)
	})
}

func (rt *Router) mountStorage(r chi.Router) {
	read := rt.require(auth.PermissionInventoryRead)
	manage := rt.require(auth.PermissionStorageManage)

	r.Route("/storage", func(r chi.Router) {
		r.With(read).Get("/units", rt.h.Storage.ListUnits)
		r.With(manage).Post("/units", rt.h.Storage.CreateUnit)
		r.With(manage).Patch("/units/{id}", rt.h.Storage.UpdateUnit)
		r.With(manage).Delete("/units/{id}", rt.h.Storage.DeleteUnit)
		r.With(read).Get("/units/{id}/grid", rt.h.Storage.Grid)
		r.With(read).Get("/search", rt.h.Storage.Search)
	})
}

func (rt *Router) mountAudit(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.Use(rt.require(auth.PermissionAuditRead))
		r.Get("/", rt.h.Audit.List)
		r.Get("/range", rt.h.Audit.Range)
		r.Get("/export", rt.h.Audit.Export)
		r.Get("/entity/{entityType}/{entityId}", rt.h.Audit.EntityHistory)
	})
}

func (rt *Router) mountSupport(r chi.Router) {
	r.Route("/tickets", func(r chi.Router) {
		r.Get("/", rt.h.Ticket.List)
		r.Post("/", rt.h.Ticket.Create)
		r.With(rt.require(auth.PermissionTicketsManage)).Patch("/{id}/status", rt.h.Ticket.UpdateStatus)
		r.Post("/{id}/comments", rt.h.Ticket.AddComment)
	})
}

// databaseHealth reports connection pool statistics
func (rt *Router) databaseHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := database.Stats(r.Context(), rt.db)
	if err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		writeHealth(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}

	writeHealth(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
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

// readiness checks every dependency the API needs to serve requests
func (rt *Router) readiness(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]interface{})
	status := http.StatusOK

	if err := database.Ping(r.Context(), rt.db); err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		checks["database"] = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = map[string]interface{}{"status": "healthy"}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}
	writeHealth(w, status, map[string]interface{}{
		"status": overall,
		"checks": checks,
	})
}

func writeHealth(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
