package report

import (
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/report"
	"github.com/shopspring/decimal"
)

// GroupKey is the dimension payslips are bucketed by before summing.
type GroupKey string

const (
	GroupByEmployee   GroupKey = "employee"
	GroupByDepartment GroupKey = "department"
	GroupByMonth      GroupKey = "month"
)

// UnknownDepartment labels payslips whose employee has no department.
const UnknownDepartment = "Unknown"

// BenefitBasis selects what a recipe reports as benefits.
type BenefitBasis int

const (
	BenefitsAllowances BenefitBasis = iota // bonus + leave compensation + transport + other allowances
	BenefitsPension                        // pension contributions
)

// Totals are the summed monetary fields of a set of payslips.
type Totals struct {
	GrossPay          decimal.Decimal
	Deductions        decimal.Decimal
	NetPay            decimal.Decimal
	IncomeTax         decimal.Decimal
	SocialSecurityTax decimal.Decimal
	Tax               decimal.Decimal // IncomeTax + SocialSecurityTax
	Insurance         decimal.Decimal // health insurance
	Pension           decimal.Decimal
	Allowances        decimal.Decimal
}

func (t Totals) add(p payslip.Payslip) Totals {
	t.GrossPay = t.GrossPay.Add(p.GrossPay)
	t.Deductions = t.Deductions.Add(p.TotalDeductions)
	t.NetPay = t.NetPay.Add(p.NetPay)
	t.IncomeTax = t.IncomeTax.Add(p.IncomeTax)
	t.SocialSecurityTax = t.SocialSecurityTax.Add(p.SocialSecurityTax)
	t.Tax = t.Tax.Add(p.IncomeTax).Add(p.SocialSecurityTax)
	t.Insurance = t.Insurance.Add(p.HealthInsurance)
	t.Pension = t.Pension.Add(p.PensionContribution)
	t.Allowances = t.Allowances.
		Add(p.Bonus).
		Add(p.LeaveCompensation).
		Add(p.TransportationAllowance).
		Add(p.OtherAllowances)
	return t
}

func (t Totals) Benefits(basis BenefitBasis) decimal.Decimal {
	if basis == BenefitsPension {
		return t.Pension
	}
	return t.Allowances
}

// Group is one bucket of a GroupBy result.
type Group struct {
	Key         string
	Records     []payslip.Payslip
	Totals      Totals
	MemberCount int
}

// Aggregator computes totals and grouped breakdowns over payslips. It holds no
// state and is safe for concurrent use.
type Aggregator struct {
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// SumTotals sums every payslip. An empty input yields zero totals.
func (a *Aggregator) SumTotals(records []payslip.Payslip) (Totals, error) {
	var totals Totals
	for _, p := range records {
		if err := validateRecord(p); err != nil {
			return Totals{}, err
		}
		totals = totals.add(p)
	}
	return totals, nil
}

// GroupBy buckets payslips by key and sums each bucket. Month grouping uses
// the calendar month of the pay period start regardless of year, so callers
// must restrict records to a single year first.
func (a *Aggregator) GroupBy(records []payslip.Payslip, key GroupKey) (map[string]Group, error) {
	groups := make(map[string]Group)
	for _, p := range records {
		if err := validateRecord(p); err != nil {
			return nil, err
		}

		k, err := groupKeyOf(p, key)
		if err != nil {
			return nil, err
		}

		g := groups[k]
		g.Key = k
		g.Records = append(g.Records, p)
		g.Totals = g.Totals.add(p)
		g.MemberCount++
		groups[k] = g
	}
	return groups, nil
}

// DistinctEmployeeCount counts the unique employees referenced by records.
func (a *Aggregator) DistinctEmployeeCount(records []payslip.Payslip) int {
	seen := make(map[string]struct{}, len(records))
	for _, p := range records {
		seen[p.EmployeeID] = struct{}{}
	}
	return len(seen)
}

// MonthKey is the GroupBy key for calendar month m (1-12).
func MonthKey(m int) string {
	return strconv.Itoa(m)
}

func groupKeyOf(p payslip.Payslip, key GroupKey) (string, error) {
	switch key {
	case GroupByEmployee:
		return p.EmployeeID, nil
	case GroupByDepartment:
		if p.Employee == nil || p.Employee.Department == "" {
			return UnknownDepartment, nil
		}
		return p.Employee.Department, nil
	case GroupByMonth:
		return MonthKey(int(p.PayPeriodStart.Month())), nil
	}
	return "", fmt.Errorf("unsupported group key %q", key)
}

func validateRecord(p payslip.Payslip) error {
	if p.EmployeeID == "" {
		return &report.InvalidRecordError{RecordID: p.ID, Reason: "missing employee reference"}
	}
	if p.PayPeriodEnd.Before(p.PayPeriodStart) {
		return &report.InvalidRecordError{RecordID: p.ID, Reason: "pay period ends before it starts"}
	}
	for _, a := range p.Amounts() {
		if a.Amount.IsNegative() {
			return &report.InvalidRecordError{RecordID: p.ID, Reason: a.Name + " is negative"}
		}
	}
	return nil
}
