package report

import "context"

// ReportService builds and manages payroll reports
type ReportService interface {
	// Generate builds a report of the given kind. Parameter problems are
	// returned as errors before anything is stored. Once generation has
	// started the stored report is returned, including when it failed.
	Generate(ctx context.Context, kind Kind, params Params, requesterID string) (Report, error)

	List(ctx context.Context, filter ReportFilter) (ListReportResult, error)
	GetByID(ctx context.Context, id string) (Report, error)
	Delete(ctx context.Context, id string) error
}
