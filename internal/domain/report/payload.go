package report

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Payload is the kind-specific breakdown stored in a report's data column.
// Each report kind has exactly one payload type.
type Payload interface {
	Kind() Kind
}

type EmployeePayRow struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeCode string          `json:"employee_code"`
	EmployeeName string          `json:"employee_name"`
	Position     string          `json:"position"`
	PayslipCount int             `json:"payslip_count"`
	TotalGross   decimal.Decimal `json:"total_gross"`
	TotalNet     decimal.Decimal `json:"total_net"`
	TotalTax     decimal.Decimal `json:"total_tax"`
}

type DepartmentSummaryData struct {
	Employees     []EmployeePayRow `json:"employees"`
	PayslipsCount int              `json:"payslips_count"`
}

func (DepartmentSummaryData) Kind() Kind { return KindDepartmentSummary }

type DepartmentPayRow struct {
	Department   string          `json:"department"`
	PayslipCount int             `json:"payslip_count"`
	TotalGross   decimal.Decimal `json:"total_gross"`
	TotalNet     decimal.Decimal `json:"total_net"`
	TotalTax     decimal.Decimal `json:"total_tax"`
}

type MonthEndSummaryData struct {
	Departments       []DepartmentPayRow `json:"departments"`
	PayslipsProcessed int                `json:"payslips_processed"`
}

func (MonthEndSummaryData) Kind() Kind { return KindMonthEndSummary }

type MonthPayRow struct {
	Month        int             `json:"month"`
	MonthName    string          `json:"month_name"`
	PayslipCount int             `json:"payslip_count"`
	TotalGross   decimal.Decimal `json:"total_gross"`
	TotalNet     decimal.Decimal `json:"total_net"`
}

type YearEndSummaryData struct {
	MonthlyBreakdown []MonthPayRow `json:"monthly_breakdown"`
	TotalPayslips    int           `json:"total_payslips"`
}

func (YearEndSummaryData) Kind() Kind { return KindYearEndSummary }

type EmployeeTaxRow struct {
	EmployeeID          string          `json:"employee_id"`
	EmployeeCode        string          `json:"employee_code"`
	EmployeeName        string          `json:"employee_name"`
	Department          string          `json:"department"`
	TotalIncomeTax      decimal.Decimal `json:"total_income_tax"`
	TotalSocialSecurity decimal.Decimal `json:"total_social_security"`
	TotalTax            decimal.Decimal `json:"total_tax"`
}

type TaxReportData struct {
	EmployeeTaxBreakdown []EmployeeTaxRow `json:"employee_tax_breakdown"`
	TotalIncomeTax       decimal.Decimal  `json:"total_income_tax"`
	TotalSocialSecurity  decimal.Decimal  `json:"total_social_security"`
}

func (TaxReportData) Kind() Kind { return KindTaxReport }

type InsuranceReportData struct {
	TotalHealthInsurance decimal.Decimal `json:"total_health_insurance"`
	TotalPension         decimal.Decimal `json:"total_pension"`
	PayslipCount         int             `json:"payslip_count"`
}

func (InsuranceReportData) Kind() Kind { return KindInsuranceReport }

// DecodePayload restores the payload variant for kind from its JSON form.
// An empty or null document yields a nil payload.
func DecodePayload(kind Kind, raw []byte) (Payload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var (
		payload Payload
		err     error
	)
	switch kind {
	case KindDepartmentSummary:
		var p DepartmentSummaryData
		err = json.Unmarshal(raw, &p)
		payload = p
	case KindMonthEndSummary:
		var p MonthEndSummaryData
		err = json.Unmarshal(raw, &p)
		payload = p
	case KindYearEndSummary:
		var p YearEndSummaryData
		err = json.Unmarshal(raw, &p)
		payload = p
	case KindTaxReport:
		var p TaxReportData
		err = json.Unmarshal(raw, &p)
		payload = p
	case KindInsuranceReport:
		var p InsuranceReportData
		err = json.Unmarshal(raw, &p)
		payload = p
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownReportKind, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", kind, err)
	}
	return payload, nil
}
