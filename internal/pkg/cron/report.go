package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/report"
)

// StaleReportReason is recorded on reports failed by the reconciler.
const StaleReportReason = "Generation failed: generation did not complete"

// ReportJobs keeps stored reports consistent with the generation lifecycle.
type ReportJobs struct {
	reportRepo report.ReportRepository
	staleAfter time.Duration
	now        func() time.Time
}

func NewReportJobs(reportRepo report.ReportRepository, staleAfter time.Duration) *ReportJobs {
	return &ReportJobs{
		reportRepo: reportRepo,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// RegisterJobs registers all report-related cron jobs
func (j *ReportJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("fail_stale_reports", interval, j.FailStaleReports)
}

// FailStaleReports finalizes reports that have been generating for longer
// than staleAfter as failed. These are left behind when the process stops
// mid-generation.
func (j *ReportJobs) FailStaleReports(ctx context.Context) error {
	cutoff := j.now().Add(-j.staleAfter)

	n, err := j.reportRepo.FailStale(ctx, cutoff, StaleReportReason)
	if err != nil {
		return fmt.Errorf("fail stale reports: %w", err)
	}
	if n > 0 {
		slog.WarnContext(ctx, "Stale reports marked failed", "count", n, "cutoff", cutoff)
	}
	return nil
}
