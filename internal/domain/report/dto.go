package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-report-engine/internal/pkg/validator"
)

const (
	MinYear = 2000
	MaxYear = 2100

	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// ========================================
// GENERATE
// ========================================

// GenerateReportRequest carries report parameters as received from a client.
// ReportType is only read by the generic generate endpoint.
type GenerateReportRequest struct {
	ReportType string  `json:"report_type,omitempty"`
	Department *string `json:"department,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Month      *int    `json:"month,omitempty"`
}

// ToParams parses the request into Params. Date strings accept YYYY-MM-DD or
// RFC3339 and are truncated to the day. Blank strings count as absent.
func (r GenerateReportRequest) ToParams() (Params, error) {
	var errs validator.ValidationErrors
	var p Params

	if r.Department != nil && !validator.IsEmpty(*r.Department) {
		dept := strings.TrimSpace(*r.Department)
		p.Department = &dept
	}

	parse := func(field string, value *string) *time.Time {
		if value == nil || validator.IsEmpty(*value) {
			return nil
		}
		d, ok := parseDay(*value)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in YYYY-MM-DD format",
			})
			return nil
		}
		return &d
	}
	p.StartDate = parse("start_date", r.StartDate)
	p.EndDate = parse("end_date", r.EndDate)
	p.Year = r.Year
	p.Month = r.Month

	if len(errs) > 0 {
		return Params{}, errs
	}
	return p, nil
}

func parseDay(s string) (time.Time, bool) {
	if d, ok := validator.IsValidDate(s); ok {
		return d, true
	}
	if t, ok := validator.IsValidDateTime(s); ok {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// RequiredParams lists the parameter names a report kind cannot be built without.
func RequiredParams(kind Kind) []string {
	switch kind {
	case KindDepartmentSummary:
		return []string{"department", "start_date", "end_date"}
	case KindMonthEndSummary:
		return []string{"year", "month"}
	case KindYearEndSummary:
		return []string{"year"}
	case KindTaxReport, KindInsuranceReport:
		return []string{"start_date", "end_date"}
	}
	return nil
}

// Require returns a *MissingParameterError naming every required parameter
// absent from p.
func (p Params) Require(kind Kind) error {
	present := map[string]bool{
		"department": p.Department != nil && !validator.IsEmpty(*p.Department),
		"start_date": p.StartDate != nil,
		"end_date":   p.EndDate != nil,
		"year":       p.Year != nil,
		"month":      p.Month != nil,
	}

	var missing []string
	for _, name := range RequiredParams(kind) {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingParameterError{Kind: kind, Params: missing}
	}
	return nil
}

// Validate checks the ranges of whichever parameters are set.
func (p Params) Validate() error {
	var errs validator.ValidationErrors

	if p.Year != nil && (*p.Year < MinYear || *p.Year > MaxYear) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear),
		})
	}

	if p.Month != nil && (*p.Month < 1 || *p.Month > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// LIST
// ========================================

// Paging bounds the page size of report listings.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

func DefaultPaging() Paging {
	return Paging{DefaultLimit: DefaultPageLimit, MaxLimit: MaxPageLimit}
}

type ReportFilter struct {
	Kind       *Kind
	Department *string
	Year       *int
	Page       int
	Limit      int
}

// Normalize applies pagination defaults and bounds.
func (f *ReportFilter) Normalize(p Paging) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = p.DefaultLimit
	}
	if f.Limit > p.MaxLimit {
		f.Limit = p.MaxLimit
	}
}

func (f ReportFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

func (f ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Kind != nil && !f.Kind.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "report_type",
			Message: "unknown report type",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListReportResult struct {
	Reports    []Report
	TotalCount int64
	Page       int
	Limit      int
	TotalPages int
}

// TotalPages returns ceil(total / limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// ========================================
// RESPONSE
// ========================================

type ReportResponse struct {
	ID          string  `json:"id"`
	ReportType  Kind    `json:"report_type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	GeneratedBy string  `json:"generated_by"`
	Status      Status  `json:"status"`
	Department  *string `json:"department,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Year        *int    `json:"year,omitempty"`
	Month       *int    `json:"month,omitempty"`
	Data        Payload `json:"data,omitempty"`
	Summary     Summary `json:"summary"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewReportResponse(r Report) ReportResponse {
	formatDay := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.Format("2006-01-02")
		return &s
	}

	return ReportResponse{
		ID:          r.ID,
		ReportType:  r.Kind,
		Title:       r.Title,
		Description: r.Description,
		GeneratedBy: r.GeneratedBy,
		Status:      r.Status,
		Department:  r.Params.Department,
		StartDate:   formatDay(r.Params.StartDate),
		EndDate:     formatDay(r.Params.EndDate),
		Year:        r.Params.Year,
		Month:       r.Params.Month,
		Data:        r.Data,
		Summary:     r.Summary,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}
}
