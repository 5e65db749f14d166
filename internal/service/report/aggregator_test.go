package report

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type slipOpt func(*payslip.Payslip)

func withEmployee(ref employee.Ref) slipOpt {
	return func(p *payslip.Payslip) {
		p.EmployeeID = ref.ID
		p.Employee = &ref
	}
}

func withPeriod(start, end time.Time) slipOpt {
	return func(p *payslip.Payslip) {
		p.PayPeriodStart = start
		p.PayPeriodEnd = end
		p.PayDate = end
	}
}

func withTaxes(income, social, health, pension string) slipOpt {
	return func(p *payslip.Payslip) {
		p.IncomeTax = dec(income)
		p.SocialSecurityTax = dec(social)
		p.HealthInsurance = dec(health)
		p.PensionContribution = dec(pension)
	}
}

func withAllowances(bonus, leave, transport, other string) slipOpt {
	return func(p *payslip.Payslip) {
		p.Bonus = dec(bonus)
		p.LeaveCompensation = dec(leave)
		p.TransportationAllowance = dec(transport)
		p.OtherAllowances = dec(other)
	}
}

// newSlip builds a processed payslip for March 2024 with the given gross pay
// and total deductions. Net pay is derived.
func newSlip(id, employeeID, gross, deductions string, opts ...slipOpt) payslip.Payslip {
	p := payslip.Payslip{
		ID:              id,
		EmployeeID:      employeeID,
		PayPeriodStart:  time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		PayPeriodEnd:    time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		PayDate:         time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		BaseSalary:      dec(gross),
		GrossPay:        dec(gross),
		TotalDeductions: dec(deductions),
		NetPay:          dec(gross).Sub(dec(deductions)),
		Status:          payslip.StatusProcessed,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func TestSumTotals_Empty(t *testing.T) {
	totals, err := NewAggregator().SumTotals(nil)
	require.NoError(t, err)

	for name, v := range map[string]decimal.Decimal{
		"gross":      totals.GrossPay,
		"deductions": totals.Deductions,
		"net":        totals.NetPay,
		"tax":        totals.Tax,
		"insurance":  totals.Insurance,
		"pension":    totals.Pension,
		"allowances": totals.Allowances,
	} {
		assert.True(t, v.IsZero(), "%s should be zero", name)
	}
}

func TestSumTotals(t *testing.T) {
	records := []payslip.Payslip{
		newSlip("p1", "e1", "1000.10", "200.05", withTaxes("150", "50", "30", "20"), withAllowances("10", "5", "2.5", "1")),
		newSlip("p2", "e2", "2000.20", "300.10", withTaxes("250", "25.5", "15", "10"), withAllowances("0", "0", "7.5", "0")),
	}

	totals, err := NewAggregator().SumTotals(records)
	require.NoError(t, err)

	assert.True(t, dec("3000.30").Equal(totals.GrossPay))
	assert.True(t, dec("500.15").Equal(totals.Deductions))
	assert.True(t, dec("2500.15").Equal(totals.NetPay))
	assert.True(t, dec("400").Equal(totals.IncomeTax))
	assert.True(t, dec("75.5").Equal(totals.SocialSecurityTax))
	assert.True(t, dec("475.5").Equal(totals.Tax))
	assert.True(t, dec("45").Equal(totals.Insurance))
	assert.True(t, dec("30").Equal(totals.Pension))
	assert.True(t, dec("26").Equal(totals.Allowances))
	assert.True(t, dec("26").Equal(totals.Benefits(BenefitsAllowances)))
	assert.True(t, dec("30").Equal(totals.Benefits(BenefitsPension)))
}

func TestSumTotals_NetEqualsGrossMinusDeductions(t *testing.T) {
	records := []payslip.Payslip{
		newSlip("p1", "e1", "4321.99", "1234.56"),
		newSlip("p2", "e2", "0.01", "0"),
		newSlip("p3", "e3", "100", "99.99"),
	}

	totals, err := NewAggregator().SumTotals(records)
	require.NoError(t, err)
	assert.True(t, totals.GrossPay.Sub(totals.Deductions).Equal(totals.NetPay))
}

func TestGroupBy_Additive(t *testing.T) {
	eng := employee.Ref{ID: "e1", Department: "Engineering"}
	ops := employee.Ref{ID: "e2", Department: "Operations"}
	records := []payslip.Payslip{
		newSlip("p1", "", "1000", "100", withEmployee(eng)),
		newSlip("p2", "", "1500.50", "150", withEmployee(eng)),
		newSlip("p3", "", "700.25", "70", withEmployee(ops)),
		newSlip("p4", "e3", "300", "30"),
	}

	agg := NewAggregator()
	total, err := agg.SumTotals(records)
	require.NoError(t, err)

	for _, key := range []GroupKey{GroupByEmployee, GroupByDepartment, GroupByMonth} {
		t.Run(string(key), func(t *testing.T) {
			groups, err := agg.GroupBy(records, key)
			require.NoError(t, err)

			gross := decimal.Zero
			count := 0
			for k, g := range groups {
				assert.Equal(t, k, g.Key)
				assert.Len(t, g.Records, g.MemberCount)
				gross = gross.Add(g.Totals.GrossPay)
				count += g.MemberCount
			}
			assert.True(t, total.GrossPay.Equal(gross))
			assert.Equal(t, len(records), count)
		})
	}
}

func TestGroupBy_Department(t *testing.T) {
	records := []payslip.Payslip{
		newSlip("p1", "", "1000", "100", withEmployee(employee.Ref{ID: "e1", Department: "Engineering"})),
		newSlip("p2", "", "500", "50", withEmployee(employee.Ref{ID: "e2"})),
		newSlip("p3", "e3", "250", "25"),
	}

	groups, err := NewAggregator().GroupBy(records, GroupByDepartment)
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups["Engineering"].MemberCount)
	assert.Equal(t, 2, groups[UnknownDepartment].MemberCount)
	assert.True(t, dec("750").Equal(groups[UnknownDepartment].Totals.GrossPay))
}

func TestGroupBy_Month(t *testing.T) {
	mar := withPeriod(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC))
	apr := withPeriod(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC))
	records := []payslip.Payslip{
		newSlip("p1", "e1", "1000", "100", mar),
		newSlip("p2", "e2", "1000", "100", mar),
		newSlip("p3", "e1", "1000", "100", apr),
	}

	groups, err := NewAggregator().GroupBy(records, GroupByMonth)
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, 2, groups[MonthKey(3)].MemberCount)
	assert.Equal(t, 1, groups[MonthKey(4)].MemberCount)
	_, ok := groups[MonthKey(5)]
	assert.False(t, ok)
}

func TestGroupBy_UnsupportedKey(t *testing.T) {
	_, err := NewAggregator().GroupBy([]payslip.Payslip{newSlip("p1", "e1", "1", "0")}, GroupKey("quarter"))
	assert.Error(t, err)
}

func TestDistinctEmployeeCount(t *testing.T) {
	records := []payslip.Payslip{
		newSlip("p1", "e1", "1", "0"),
		newSlip("p2", "e1", "1", "0"),
		newSlip("p3", "e2", "1", "0"),
	}
	agg := NewAggregator()
	assert.Equal(t, 2, agg.DistinctEmployeeCount(records))
	assert.Equal(t, 0, agg.DistinctEmployeeCount(nil))
}

func TestAggregator_InvalidRecords(t *testing.T) {
	negative := newSlip("p-neg", "e1", "1000", "100")
	negative.IncomeTax = dec("-1")

	backwards := newSlip("p-back", "e1", "1000", "100",
		withPeriod(time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))

	orphan := newSlip("p-orphan", "", "1000", "100")

	tests := []struct {
		name   string
		record payslip.Payslip
		reason string
	}{
		{"negative amount", negative, "income_tax is negative"},
		{"period ends before start", backwards, "pay period ends before it starts"},
		{"missing employee", orphan, "missing employee reference"},
	}

	agg := NewAggregator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := agg.SumTotals([]payslip.Payslip{tt.record})
			var invalid *report.InvalidRecordError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.record.ID, invalid.RecordID)
			assert.Equal(t, tt.reason, invalid.Reason)

			_, err = agg.GroupBy([]payslip.Payslip{tt.record}, GroupByEmployee)
			assert.True(t, errors.As(err, &invalid))
		})
	}
}
