package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-report-engine/internal/pkg/database"
)

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

// ListPayslips implements payslip.PayslipRepository.
func (p *payslipRepositoryImpl) ListPayslips(ctx context.Context, filter payslip.Filter) ([]payslip.Payslip, error) {
	if filter.EmployeeIDs != nil && len(filter.EmployeeIDs) == 0 {
		return []payslip.Payslip{}, nil
	}

	q := GetQuerier(ctx, p.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeIDs != nil {
		conditions = append(conditions, fmt.Sprintf("ps.employee_id = ANY($%d::uuid[])", argIdx))
		args = append(args, filter.EmployeeIDs)
		argIdx++
	}
	if filter.Department != nil {
		conditions = append(conditions, fmt.Sprintf("ps.employee_id IN (SELECT id FROM employees WHERE department = $%d)", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.PeriodStart != nil {
		conditions = append(conditions, fmt.Sprintf("ps.pay_period_start >= $%d::date", argIdx))
		args = append(args, *filter.PeriodStart)
		argIdx++
	}
	if filter.PeriodEnd != nil {
		conditions = append(conditions, fmt.Sprintf("ps.pay_period_end <= $%d::date", argIdx))
		args = append(args, *filter.PeriodEnd)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT
			ps.id, ps.employee_id, ps.pay_period_start, ps.pay_period_end, ps.pay_date,
			ps.base_salary, ps.overtime, ps.bonus, ps.leave_compensation,
			ps.transportation_allowance, ps.other_allowances, ps.gross_pay,
			ps.income_tax, ps.social_security_tax, ps.health_insurance,
			ps.pension_contribution, ps.other_deductions, ps.total_deductions,
			ps.net_pay, ps.status
		FROM payslips ps
		WHERE %s
		ORDER BY ps.pay_period_start, ps.employee_id, ps.id
	`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	payslips := []payslip.Payslip{}
	for rows.Next() {
		var ps payslip.Payslip
		if err := rows.Scan(
			&ps.ID, &ps.EmployeeID, &ps.PayPeriodStart, &ps.PayPeriodEnd, &ps.PayDate,
			&ps.BaseSalary, &ps.Overtime, &ps.Bonus, &ps.LeaveCompensation,
			&ps.TransportationAllowance, &ps.OtherAllowances, &ps.GrossPay,
			&ps.IncomeTax, &ps.SocialSecurityTax, &ps.HealthInsurance,
			&ps.PensionContribution, &ps.OtherDeductions, &ps.TotalDeductions,
			&ps.NetPay, &ps.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payslips: %w", err)
	}

	return payslips, nil
}
