package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/report"
	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/user"
	"github.com/cmlabs-hris/payroll-report-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-report-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-report-engine/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	// Generation, one endpoint per kind
	GenerateDepartmentSummary(w http.ResponseWriter, r *http.Request)
	GenerateMonthEndSummary(w http.ResponseWriter, r *http.Request)
	GenerateYearEndSummary(w http.ResponseWriter, r *http.Request)
	GenerateTaxReport(w http.ResponseWriter, r *http.Request)
	GenerateInsuranceReport(w http.ResponseWriter, r *http.Request)

	// Generate reads the kind from the request body
	Generate(w http.ResponseWriter, r *http.Request)

	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ========== GENERATE ==========

func (h *reportHandlerImpl) GenerateDepartmentSummary(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, report.KindDepartmentSummary)
}

func (h *reportHandlerImpl) GenerateMonthEndSummary(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, report.KindMonthEndSummary)
}

func (h *reportHandlerImpl) GenerateYearEndSummary(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, report.KindYearEndSummary)
}

func (h *reportHandlerImpl) GenerateTaxReport(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, report.KindTaxReport)
}

func (h *reportHandlerImpl) GenerateInsuranceReport(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, report.KindInsuranceReport)
}

// Generate handles POST /reports with report_type in the body
func (h *reportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "")
}

func (h *reportHandlerImpl) generate(w http.ResponseWriter, r *http.Request, kind report.Kind) {
	ctx := r.Context()

	requester, ok := middleware.RequesterFromContext(ctx)
	if !ok {
		response.HandleError(w, user.ErrRequesterIDRequired)
		return
	}

	var req report.GenerateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if kind == "" {
		if validator.IsEmpty(req.ReportType) {
			response.ValidationError(w, map[string]string{"report_type": "report_type is required"})
			return
		}
		kind = report.Kind(strings.TrimSpace(req.ReportType))
		if !kind.IsValid() {
			response.ValidationError(w, map[string]string{"report_type": "unknown report type"})
			return
		}
		if kind == report.KindYearEndSummary && !user.HasPermission(requester.Role, user.PermissionReportsGenerateAnnual) {
			response.HandleError(w, user.ErrInsufficientPermissions)
			return
		}
	}

	params, err := req.ToParams()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.Generate(ctx, kind, params, requester.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Report generated successfully"
	if result.Status == report.StatusFailed {
		message = "Report generation failed"
	}
	response.Created(w, message, report.NewReportResponse(result))
}

// ========== QUERY ==========

// List handles GET /reports
func (h *reportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var filter report.ReportFilter
	var errs validator.ValidationErrors

	if v := strings.TrimSpace(query.Get("report_type")); v != "" {
		kind := report.Kind(v)
		filter.Kind = &kind
	}
	if v := strings.TrimSpace(query.Get("department")); v != "" {
		filter.Department = &v
	}

	parseInt := func(field string) (int, bool) {
		v := query.Get(field)
		if v == "" {
			return 0, false
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " must be an integer"})
			return 0, false
		}
		return n, true
	}
	if year, ok := parseInt("year"); ok {
		filter.Year = &year
	}
	filter.Page, _ = parseInt("page")
	filter.Limit, _ = parseInt("limit")

	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.reportService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	reports := make([]report.ReportResponse, 0, len(result.Reports))
	for _, rep := range result.Reports {
		reports = append(reports, report.NewReportResponse(rep))
	}

	response.SuccessWithMeta(w, reports, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// GetByID handles GET /reports/{id}
func (h *reportHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Report ID is required", nil)
		return
	}

	result, err := h.reportService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report.NewReportResponse(result))
}

// Delete handles DELETE /reports/{id}
func (h *reportHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Report ID is required", nil)
		return
	}

	if err := h.reportService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report deleted successfully", nil)
}
