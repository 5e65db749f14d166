package http

import (
	"log/slog"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/user"
	"github.com/cmlabs-hris/payroll-report-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-report-engine/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, reportHandler ReportHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/reports", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/", reportHandler.List)
				r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/{id}", reportHandler.GetByID)
				r.With(middleware.RequirePermission(user.PermissionReportsDelete)).Delete("/{id}", reportHandler.Delete)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsGenerate))
					r.Post("/", reportHandler.Generate)
					r.Post("/department", reportHandler.GenerateDepartmentSummary)
					r.Post("/month-end", reportHandler.GenerateMonthEndSummary)
					r.Post("/tax", reportHandler.GenerateTaxReport)
					r.Post("/insurance", reportHandler.GenerateInsuranceReport)
				})

				r.With(middleware.RequirePermission(user.PermissionReportsGenerateAnnual)).Post("/year-end", reportHandler.GenerateYearEndSummary)
			})
		})
	})
	return r
}
