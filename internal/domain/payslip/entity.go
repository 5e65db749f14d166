package payslip

import (
	"time"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusDraft     Status = "draft"
	StatusProcessed Status = "processed"
	StatusPaid      Status = "paid"
	StatusDisputed  Status = "disputed"
)

// Payslip - one pay period's computed earnings and deductions for one employee.
// Gross and net pay are pre-computed upstream:
//
//	GrossPay = BaseSalary + Overtime + Bonus + LeaveCompensation + TransportationAllowance + OtherAllowances
//	NetPay   = GrossPay - TotalDeductions
type Payslip struct {
	ID             string
	EmployeeID     string
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	PayDate        time.Time

	// Earnings
	BaseSalary              decimal.Decimal
	Overtime                decimal.Decimal
	Bonus                   decimal.Decimal
	LeaveCompensation       decimal.Decimal
	TransportationAllowance decimal.Decimal
	OtherAllowances         decimal.Decimal
	GrossPay                decimal.Decimal

	// Deductions
	IncomeTax           decimal.Decimal
	SocialSecurityTax   decimal.Decimal
	HealthInsurance     decimal.Decimal
	PensionContribution decimal.Decimal
	OtherDeductions     decimal.Decimal
	TotalDeductions     decimal.Decimal

	NetPay decimal.Decimal
	Status Status

	// Joined fields
	Employee *employee.Ref
}

// Amounts returns every monetary field keyed by its column name.
func (p Payslip) Amounts() []NamedAmount {
	return []NamedAmount{
		{"base_salary", p.BaseSalary},
		{"overtime", p.Overtime},
		{"bonus", p.Bonus},
		{"leave_compensation", p.LeaveCompensation},
		{"transportation_allowance", p.TransportationAllowance},
		{"other_allowances", p.OtherAllowances},
		{"gross_pay", p.GrossPay},
		{"income_tax", p.IncomeTax},
		{"social_security_tax", p.SocialSecurityTax},
		{"health_insurance", p.HealthInsurance},
		{"pension_contribution", p.PensionContribution},
		{"other_deductions", p.OtherDeductions},
		{"total_deductions", p.TotalDeductions},
		{"net_pay", p.NetPay},
	}
}

type NamedAmount struct {
	Name   string
	Amount decimal.Decimal
}
