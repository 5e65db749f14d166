package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/payroll-report-engine/internal/config"
	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/report"
	appHTTP "github.com/cmlabs-hris/payroll-report-engine/internal/handler/http"
	"github.com/cmlabs-hris/payroll-report-engine/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-report-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-report-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-report-engine/internal/repository/postgresql"
	reportService "github.com/cmlabs-hris/payroll-report-engine/internal/service/report"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DatabaseURL()
	if cfg.Report.AutoMigrate {
		if err := database.RunMigrations(dsn); err != nil {
			return err
		}
		slog.Info("Database migrations applied")
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	reportRepo := postgresql.NewReportRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}

	reportSvc := reportService.NewReportService(
		reportRepo,
		payslipRepo,
		employeeRepo,
		reportService.NewAggregator(),
		report.Paging{
			DefaultLimit: cfg.Report.DefaultPageLimit,
			MaxLimit:     cfg.Report.MaxPageLimit,
		},
	)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	scheduler := cron.NewScheduler()
	cron.NewReportJobs(reportRepo, cfg.Report.StaleAfter).RegisterJobs(scheduler, cfg.Report.ReconcileInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AllowedOrigins: cfg.App.AllowedOrigins,
		Logger:         logger,
	}, JWTService, reportHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newLogger(app config.AppConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(app.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-report-engine"),
		slog.String("env", app.Env),
	)
}
