package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sweetchef/sc-dashboard/internal/activity"
	"github.com/sweetchef/sc-dashboard/internal/auth"
	"github.com/sweetchef/sc-dashboard/internal/ebe"
	"github.com/sweetchef/sc-dashboard/internal/imports"
	"github.com/sweetchef/sc-dashboard/internal/metrics"
	"github.com/sweetchef/sc-dashboard/internal/platform/db"
	"github.com/sweetchef/sc-dashboard/internal/platform/httpx"
	"github.com/sweetchef/sc-dashboard/internal/sales"
	"github.com/sweetchef/sc-dashboard/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	Pool            *pgxpool.Pool
	AuthHandler     *auth.Handler
	AuthMiddleware  auth.Middleware
	SalesHandler    *sales.Handler
	ActivityHandler *activity.Handler
	MetricsHandler  *metrics.Handler
	EBEHandler      *ebe.Handler
	ImportsHandler  *imports.Handler
	JobsHandler     *jobs.Handler
}

// NewRouter builds the chi router. Everything under /api except the
// auth and health routes requires a role cookie; mutating routes also
// require the admin cookie.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		if sess, ok := auth.SessionFromRequest(req); ok {
			http.Redirect(w, req, sess.Landing, http.StatusSeeOther)
			return
		}
		http.Redirect(w, req, "/login", http.StatusSeeOther)
	})

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		api.Get("/health/db", func(w http.ResponseWriter, req *http.Request) {
			if err := db.Health(req.Context(), params.Pool); err != nil {
				params.Logger.Error("db health", slog.Any("error", err))
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
				return
			}
			httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		params.AuthHandler.MountRoutes(api)
		params.ImportsHandler.MountRoutes(api)
		if params.JobsHandler != nil {
			params.JobsHandler.MountRoutes(api)
		}

		api.Group(func(gated chi.Router) {
			gated.Use(params.AuthMiddleware.RequireRole)
			params.SalesHandler.MountRoutes(gated)
			params.ActivityHandler.MountRoutes(gated)
			params.MetricsHandler.MountRoutes(gated)
			params.EBEHandler.MountRoutes(gated)
		})

		api.Group(func(admin chi.Router) {
			admin.Use(params.AuthMiddleware.RequireAdmin)
			params.SalesHandler.MountAdminRoutes(admin)
			params.MetricsHandler.MountAdminRoutes(admin)
			params.EBEHandler.MountAdminRoutes(admin)
			params.ImportsHandler.MountAdminRoutes(admin)
			if params.JobsHandler != nil {
				params.JobsHandler.MountAdminRoutes(admin)
			}
		})
	})

	return r
}
