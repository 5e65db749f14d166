package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/report"
	"github.com/stretchr/testify/mock"
)

// MockReportRepository returns either a fixed report or, when configured with
// a func(report.Report) report.Report, the result of applying it to the input.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) reportResult(args mock.Arguments, in report.Report) (report.Report, error) {
	if fn, ok := args.Get(0).(func(report.Report) report.Report); ok {
		return fn(in), args.Error(1)
	}
	return args.Get(0).(report.Report), args.Error(1)
}

func (m *MockReportRepository) Save(ctx context.Context, r report.Report) (report.Report, error) {
	return m.reportResult(m.Called(ctx, r), r)
}

func (m *MockReportRepository) Finalize(ctx context.Context, r report.Report) (report.Report, error) {
	return m.reportResult(m.Called(ctx, r), r)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id string) (report.Report, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(report.Report), args.Error(1)
}

func (m *MockReportRepository) FindAll(ctx context.Context, filter report.ReportFilter) ([]report.Report, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]report.Report), args.Get(1).(int64), args.Error(2)
}

func (m *MockReportRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReportRepository) FailStale(ctx context.Context, olderThan time.Time, reason string) (int64, error) {
	args := m.Called(ctx, olderThan, reason)
	return args.Get(0).(int64), args.Error(1)
}

type MockPayslipRepository struct {
	mock.Mock
}

func (m *MockPayslipRepository) ListPayslips(ctx context.Context, filter payslip.Filter) ([]payslip.Payslip, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payslip.Payslip), args.Error(1)
}

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) ListActive(ctx context.Context, department *string) ([]employee.Ref, error) {
	args := m.Called(ctx, department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]employee.Ref), args.Error(1)
}

func (m *MockEmployeeRepository) GetByIDs(ctx context.Context, ids []string) ([]employee.Ref, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]employee.Ref), args.Error(1)
}
