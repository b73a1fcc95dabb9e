package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	// UploadsDir is served under /uploads when set.
	UploadsDir string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	punchHandler PunchHandler,
	scheduleHandler ScheduleHandler,
	adjustmentHandler AdjustmentHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-cmlabs"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/punches", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionPunchCreate)).Post("/", punchHandler.Submit)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPunchViewOwn))
					r.Get("/", punchHandler.List)
					r.Get("/today", punchHandler.Today)
					r.Get("/{id}", punchHandler.Get)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/expected", scheduleHandler.GetExpected)
			})

			r.Route("/adjustments", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAdjustmentCreate)).Post("/", adjustmentHandler.Create)
				r.Get("/my", adjustmentHandler.ListMy)
				r.Get("/{id}", adjustmentHandler.Get)
				r.With(middleware.RequirePermission(user.PermissionAdjustmentCreate)).Post("/{id}/attachment", adjustmentHandler.Attach)

				// Manager or admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.With(middleware.RequirePermission(user.PermissionAdjustmentViewAll)).Get("/", adjustmentHandler.List)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionAdjustmentApprove))
						r.Post("/{id}/approve", adjustmentHandler.Approve)
						r.Post("/{id}/reject", adjustmentHandler.Reject)
						r.Post("/{id}/decision", adjustmentHandler.Decide)
					})
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsViewOwn))
				r.Get("/monthly", reportHandler.GetMonthly)
				r.Get("/monthly/export", reportHandler.ExportMonthly)
			})
		})
	})
	return r
}
