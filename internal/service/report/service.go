package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/report"
	"github.com/cmlabs-hris/payroll-report-engine/internal/pkg/validator"
)

type ReportServiceImpl struct {
	reportRepo   report.ReportRepository
	payslipRepo  payslip.PayslipRepository
	employeeRepo employee.EmployeeRepository
	aggregator   *Aggregator
	paging       report.Paging
}

func NewReportService(
	reportRepo report.ReportRepository,
	payslipRepo payslip.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
	aggregator *Aggregator,
	paging report.Paging,
) report.ReportService {
	return &ReportServiceImpl{
		reportRepo:   reportRepo,
		payslipRepo:  payslipRepo,
		employeeRepo: employeeRepo,
		aggregator:   aggregator,
		paging:       paging,
	}
}

// Generate validates the parameters, stores the report as generating, runs the
// recipe and stores the terminal result.
func (s *ReportServiceImpl) Generate(ctx context.Context, kind report.Kind, params report.Params, requesterID string) (report.Report, error) {
	if !kind.IsValid() {
		return report.Report{}, fmt.Errorf("%w: %q", report.ErrUnknownReportKind, kind)
	}
	if validator.IsEmpty(requesterID) {
		return report.Report{}, validator.ValidationErrors{{
			Field:   "generated_by",
			Message: "requester is required",
		}}
	}
	if err := params.Require(kind); err != nil {
		return report.Report{}, err
	}
	if err := params.Validate(); err != nil {
		return report.Report{}, err
	}

	draft := describe(kind, params)
	draft.GeneratedBy = requesterID
	draft.Status = report.StatusGenerating

	saved, err := s.reportRepo.Save(ctx, draft)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to save report: %w", err)
	}

	// A started generation always reaches a terminal state.
	ctx = context.WithoutCancel(ctx)

	slog.InfoContext(ctx, "Report generation started",
		"report_id", saved.ID,
		"kind", kind,
		"generated_by", requesterID,
	)

	data, summary, buildErr := s.build(ctx, kind, draft.Params)
	if buildErr != nil {
		saved.Status = report.StatusFailed
		saved.Description = fmt.Sprintf("Generation failed: %v", buildErr)
		slog.WarnContext(ctx, "Report generation failed",
			"report_id", saved.ID,
			"kind", kind,
			"error", buildErr,
		)
	} else {
		saved.Status = report.StatusCompleted
		saved.Data = data
		saved.Summary = summary
	}

	final, err := s.reportRepo.Finalize(ctx, saved)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to finalize report %s: %w", saved.ID, err)
	}

	slog.InfoContext(ctx, "Report generation finished",
		"report_id", final.ID,
		"kind", kind,
		"status", final.Status,
		"total_employees", final.Summary.TotalEmployees,
	)
	return final, nil
}

func (s *ReportServiceImpl) build(ctx context.Context, kind report.Kind, p report.Params) (report.Payload, report.Summary, error) {
	switch kind {
	case report.KindDepartmentSummary:
		return s.buildDepartmentSummary(ctx, *p.Department, *p.StartDate, *p.EndDate)
	case report.KindMonthEndSummary:
		return s.buildMonthEndSummary(ctx, *p.StartDate, *p.EndDate)
	case report.KindYearEndSummary:
		return s.buildYearEndSummary(ctx, *p.Year, *p.StartDate, *p.EndDate)
	case report.KindTaxReport:
		return s.buildTaxReport(ctx, *p.StartDate, *p.EndDate)
	case report.KindInsuranceReport:
		return s.buildInsuranceReport(ctx, *p.StartDate, *p.EndDate)
	}
	return nil, report.Summary{}, fmt.Errorf("%w: %q", report.ErrUnknownReportKind, kind)
}

func (s *ReportServiceImpl) List(ctx context.Context, filter report.ReportFilter) (report.ListReportResult, error) {
	filter.Normalize(s.paging)
	if err := filter.Validate(); err != nil {
		return report.ListReportResult{}, err
	}

	reports, total, err := s.reportRepo.FindAll(ctx, filter)
	if err != nil {
		return report.ListReportResult{}, fmt.Errorf("failed to list reports: %w", err)
	}

	return report.ListReportResult{
		Reports:    reports,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: report.TotalPages(total, filter.Limit),
	}, nil
}

func (s *ReportServiceImpl) GetByID(ctx context.Context, id string) (report.Report, error) {
	if !validator.IsValidUUID(id) {
		return report.Report{}, report.ErrReportNotFound
	}
	return s.reportRepo.FindByID(ctx, id)
}

func (s *ReportServiceImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return report.ErrReportNotFound
	}
	if err := s.reportRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Report deleted", "report_id", id)
	return nil
}
