package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind enum
type Kind string

const (
	KindDepartmentSummary Kind = "department_summary"
	KindMonthEndSummary   Kind = "month_end_summary"
	KindYearEndSummary    Kind = "year_end_summary"
	KindTaxReport         Kind = "tax_report"
	KindInsuranceReport   Kind = "insurance_report"
)

// Kinds lists every supported report kind.
var Kinds = []Kind{
	KindDepartmentSummary,
	KindMonthEndSummary,
	KindYearEndSummary,
	KindTaxReport,
	KindInsuranceReport,
}

func (k Kind) IsValid() bool {
	for _, kind := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Status enum. Completed and Failed are terminal.
type Status string

const (
	StatusGenerating Status = "generating"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Params are the filter parameters a report was generated with. Only the
// fields relevant to the report kind are set.
type Params struct {
	Department *string
	StartDate  *time.Time
	EndDate    *time.Time
	Year       *int
	Month      *int
}

// Summary has a fixed shape across kinds. Totals that do not apply to a kind
// are left nil and omitted when encoded.
type Summary struct {
	TotalEmployees  int              `json:"total_employees"`
	TotalGrossPay   *decimal.Decimal `json:"total_gross_pay,omitempty"`
	TotalDeductions *decimal.Decimal `json:"total_deductions,omitempty"`
	TotalNetPay     *decimal.Decimal `json:"total_net_pay,omitempty"`
	TotalTax        *decimal.Decimal `json:"total_tax,omitempty"`
	TotalInsurance  *decimal.Decimal `json:"total_insurance,omitempty"`
	TotalBenefits   *decimal.Decimal `json:"total_benefits,omitempty"`
}

// Report - a persisted, immutable payroll report artifact
type Report struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
	GeneratedBy string
	Status      Status
	Params      Params
	Data        Payload
	Summary     Summary
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
