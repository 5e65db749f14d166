package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/report"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// monthWindow returns the first and last day of a calendar month.
func monthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

func yearWindow(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// describe fills the title, description and the parameters stored with a new
// report. Month and year reports also record their derived date window.
func describe(kind report.Kind, p report.Params) report.Report {
	r := report.Report{Kind: kind}

	switch kind {
	case report.KindDepartmentSummary:
		r.Title = fmt.Sprintf("%s Department Report", *p.Department)
		r.Description = fmt.Sprintf("Department summary from %s to %s",
			p.StartDate.Format(dayLayout), p.EndDate.Format(dayLayout))
		r.Params = report.Params{Department: p.Department, StartDate: p.StartDate, EndDate: p.EndDate}

	case report.KindMonthEndSummary:
		start, end := monthWindow(*p.Year, *p.Month)
		r.Title = fmt.Sprintf("Month-End Report - %d/%d", *p.Year, *p.Month)
		r.Description = fmt.Sprintf("Monthly payroll summary for %s %d", time.Month(*p.Month), *p.Year)
		r.Params = report.Params{Year: p.Year, Month: p.Month, StartDate: &start, EndDate: &end}

	case report.KindYearEndSummary:
		start, end := yearWindow(*p.Year)
		r.Title = fmt.Sprintf("Year-End Report - %d", *p.Year)
		r.Description = fmt.Sprintf("Annual payroll summary for %d", *p.Year)
		r.Params = report.Params{Year: p.Year, StartDate: &start, EndDate: &end}

	case report.KindTaxReport:
		r.Title = "Tax Compliance Report"
		r.Description = fmt.Sprintf("Tax summary from %s to %s",
			p.StartDate.Format(dayLayout), p.EndDate.Format(dayLayout))
		r.Params = report.Params{StartDate: p.StartDate, EndDate: p.EndDate}

	case report.KindInsuranceReport:
		r.Title = "Insurance & Benefits Report"
		r.Description = fmt.Sprintf("Insurance contributions from %s to %s",
			p.StartDate.Format(dayLayout), p.EndDate.Format(dayLayout))
		r.Params = report.Params{StartDate: p.StartDate, EndDate: p.EndDate}
	}

	return r
}

// ========================================
// DEPARTMENT SUMMARY
// ========================================

func (s *ReportServiceImpl) buildDepartmentSummary(ctx context.Context, department string, start, end time.Time) (report.Payload, report.Summary, error) {
	employees, err := s.employeeRepo.ListActive(ctx, &department)
	if err != nil {
		return nil, report.Summary{}, fmt.Errorf("failed to list employees of %s: %w", department, err)
	}

	byID := make(map[string]employee.Ref, len(employees))
	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
		ids = append(ids, emp.ID)
	}

	var payslips []payslip.Payslip
	if len(ids) > 0 {
		payslips, err = s.payslipRepo.ListPayslips(ctx, payslip.Filter{
			EmployeeIDs: ids,
			PeriodStart: &start,
			PeriodEnd:   &end,
		})
		if err != nil {
			return nil, report.Summary{}, fmt.Errorf("failed to get payslips: %w", err)
		}
	}
	for i := range payslips {
		if emp, ok := byID[payslips[i].EmployeeID]; ok {
			payslips[i].Employee = &emp
		}
	}

	totals, err := s.aggregator.SumTotals(payslips)
	if err != nil {
		return nil, report.Summary{}, err
	}
	groups, err := s.aggregator.GroupBy(payslips, GroupByEmployee)
	if err != nil {
		return nil, report.Summary{}, err
	}

	rows := make([]report.EmployeePayRow, 0, len(groups))
	for id, g := range groups {
		emp := byID[id]
		rows = append(rows, report.EmployeePayRow{
			EmployeeID:   id,
			EmployeeCode: emp.EmployeeCode,
			EmployeeName: emp.FullName(),
			Position:     emp.Position,
			PayslipCount: g.MemberCount,
			TotalGross:   g.Totals.GrossPay,
			TotalNet:     g.Totals.NetPay,
			TotalTax:     g.Totals.Tax,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EmployeeName != rows[j].EmployeeName {
			return rows[i].EmployeeName < rows[j].EmployeeName
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})

	data := report.DepartmentSummaryData{
		Employees:     rows,
		PayslipsCount: len(payslips),
	}
	summary := report.Summary{
		TotalEmployees:  len(employees),
		TotalGrossPay:   amount(totals.GrossPay),
		TotalDeductions: amount(totals.Deductions),
		TotalNetPay:     amount(totals.NetPay),
		TotalTax:        amount(totals.Tax),
		TotalInsurance:  amount(totals.Insurance),
		TotalBenefits:   amount(totals.Benefits(BenefitsAllowances)),
	}
	return data, summary, nil
}

// ========================================
// MONTH-END SUMMARY
// ========================================

func (s *ReportServiceImpl) buildMonthEndSummary(ctx context.Context, start, end time.Time) (report.Payload, report.Summary, error) {
	payslips, err := s.fetchWithEmployees(ctx, start, end)
	if err != nil {
		return nil, report.Summary{}, err
	}

	totals, err := s.aggregator.SumTotals(payslips)
	if err != nil {
		return nil, report.Summary{}, err
	}
	groups, err := s.aggregator.GroupBy(payslips, GroupByDepartment)
	if err != nil {
		return nil, report.Summary{}, err
	}

	rows := make([]report.DepartmentPayRow, 0, len(groups))
	for dept, g := range groups {
		rows = append(rows, report.DepartmentPayRow{
			Department:   dept,
			PayslipCount: g.MemberCount,
			TotalGross:   g.Totals.GrossPay,
			TotalNet:     g.Totals.NetPay,
			TotalTax:     g.Totals.Tax,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Department < rows[j].Department })

	data := report.MonthEndSummaryData{
		Departments:       rows,
		PayslipsProcessed: len(payslips),
	}
	summary := report.Summary{
		TotalEmployees:  len(payslips),
		TotalGrossPay:   amount(totals.GrossPay),
		TotalDeductions: amount(totals.Deductions),
		TotalNetPay:     amount(totals.NetPay),
		TotalTax:        amount(totals.Tax),
		TotalInsurance:  amount(totals.Insurance),
	}
	return data, summary, nil
}

// ========================================
// YEAR-END SUMMARY
// ========================================

func (s *ReportServiceImpl) buildYearEndSummary(ctx context.Context, year int, start, end time.Time) (report.Payload, report.Summary, error) {
	payslips, err := s.payslipRepo.ListPayslips(ctx, payslip.Filter{
		PeriodStart: &start,
		PeriodEnd:   &end,
	})
	if err != nil {
		return nil, report.Summary{}, fmt.Errorf("failed to get payslips for %d: %w", year, err)
	}

	totals, err := s.aggregator.SumTotals(payslips)
	if err != nil {
		return nil, report.Summary{}, err
	}
	groups, err := s.aggregator.GroupBy(payslips, GroupByMonth)
	if err != nil {
		return nil, report.Summary{}, err
	}

	months := make([]report.MonthPayRow, 0, 12)
	for m := 1; m <= 12; m++ {
		g := groups[MonthKey(m)]
		months = append(months, report.MonthPayRow{
			Month:        m,
			MonthName:    time.Month(m).String(),
			PayslipCount: g.MemberCount,
			TotalGross:   g.Totals.GrossPay,
			TotalNet:     g.Totals.NetPay,
		})
	}

	data := report.YearEndSummaryData{
		MonthlyBreakdown: months,
		TotalPayslips:    len(payslips),
	}
	summary := report.Summary{
		TotalEmployees:  s.aggregator.DistinctEmployeeCount(payslips),
		TotalGrossPay:   amount(totals.GrossPay),
		TotalDeductions: amount(totals.Deductions),
		TotalNetPay:     amount(totals.NetPay),
		TotalTax:        amount(totals.Tax),
		TotalInsurance:  amount(totals.Insurance),
		TotalBenefits:   amount(totals.Benefits(BenefitsPension)),
	}
	return data, summary, nil
}

// ========================================
// TAX REPORT
// ========================================

func (s *ReportServiceImpl) buildTaxReport(ctx context.Context, start, end time.Time) (report.Payload, report.Summary, error) {
	payslips, err := s.fetchWithEmployees(ctx, start, end)
	if err != nil {
		return nil, report.Summary{}, err
	}

	totals, err := s.aggregator.SumTotals(payslips)
	if err != nil {
		return nil, report.Summary{}, err
	}
	groups, err := s.aggregator.GroupBy(payslips, GroupByEmployee)
	if err != nil {
		return nil, report.Summary{}, err
	}

	rows := make([]report.EmployeeTaxRow, 0, len(groups))
	for id, g := range groups {
		row := report.EmployeeTaxRow{
			EmployeeID:          id,
			TotalIncomeTax:      g.Totals.IncomeTax,
			TotalSocialSecurity: g.Totals.SocialSecurityTax,
			TotalTax:            g.Totals.Tax,
		}
		if emp := g.Records[0].Employee; emp != nil {
			row.EmployeeCode = emp.EmployeeCode
			row.EmployeeName = emp.FullName()
			row.Department = emp.Department
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EmployeeName != rows[j].EmployeeName {
			return rows[i].EmployeeName < rows[j].EmployeeName
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})

	data := report.TaxReportData{
		EmployeeTaxBreakdown: rows,
		TotalIncomeTax:       totals.IncomeTax,
		TotalSocialSecurity:  totals.SocialSecurityTax,
	}
	summary := report.Summary{
		TotalEmployees: len(groups),
		TotalTax:       amount(totals.Tax),
	}
	return data, summary, nil
}

// ========================================
// INSURANCE REPORT
// ========================================

func (s *ReportServiceImpl) buildInsuranceReport(ctx context.Context, start, end time.Time) (report.Payload, report.Summary, error) {
	payslips, err := s.payslipRepo.ListPayslips(ctx, payslip.Filter{
		PeriodStart: &start,
		PeriodEnd:   &end,
	})
	if err != nil {
		return nil, report.Summary{}, fmt.Errorf("failed to get payslips: %w", err)
	}

	totals, err := s.aggregator.SumTotals(payslips)
	if err != nil {
		return nil, report.Summary{}, err
	}

	data := report.InsuranceReportData{
		TotalHealthInsurance: totals.Insurance,
		TotalPension:         totals.Pension,
		PayslipCount:         len(payslips),
	}
	summary := report.Summary{
		TotalEmployees: s.aggregator.DistinctEmployeeCount(payslips),
		TotalInsurance: amount(totals.Insurance.Add(totals.Pension)),
	}
	return data, summary, nil
}

// fetchWithEmployees loads payslips inside the window, then resolves their
// employees in one bulk lookup.
func (s *ReportServiceImpl) fetchWithEmployees(ctx context.Context, start, end time.Time) ([]payslip.Payslip, error) {
	payslips, err := s.payslipRepo.ListPayslips(ctx, payslip.Filter{
		PeriodStart: &start,
		PeriodEnd:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get payslips: %w", err)
	}
	if len(payslips) == 0 {
		return payslips, nil
	}

	seen := make(map[string]struct{}, len(payslips))
	ids := make([]string, 0, len(payslips))
	for _, p := range payslips {
		if _, ok := seen[p.EmployeeID]; ok {
			continue
		}
		seen[p.EmployeeID] = struct{}{}
		ids = append(ids, p.EmployeeID)
	}

	employees, err := s.employeeRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	byID := make(map[string]employee.Ref, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	for i := range payslips {
		if emp, ok := byID[payslips[i].EmployeeID]; ok {
			payslips[i].Employee = &emp
		}
	}
	return payslips, nil
}

func amount(d decimal.Decimal) *decimal.Decimal {
	return &d
}
