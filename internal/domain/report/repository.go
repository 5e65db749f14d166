package report

import (
	"context"
	"time"
)

// ReportRepository persists report artifacts.
type ReportRepository interface {
	// Save inserts a new report and assigns its ID and timestamps.
	Save(ctx context.Context, r Report) (Report, error)

	// Finalize stores the terminal status, description, data and summary of a
	// report that is still generating. Returns ErrReportAlreadyFinalized when
	// the stored report is already terminal.
	Finalize(ctx context.Context, r Report) (Report, error)

	FindByID(ctx context.Context, id string) (Report, error)

	// FindAll returns one page of reports, newest first, and the total count
	// matching the filter.
	FindAll(ctx context.Context, filter ReportFilter) ([]Report, int64, error)

	Delete(ctx context.Context, id string) error

	// FailStale marks reports still generating since before olderThan as failed.
	FailStale(ctx context.Context, olderThan time.Time, reason string) (int64, error)
}
