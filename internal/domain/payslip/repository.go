package payslip

import (
	"context"
	"time"
)

// Filter narrows a payslip query. Nil fields are not applied. A non-nil but
// empty EmployeeIDs matches nothing. PeriodStart and PeriodEnd are inclusive
// day bounds and a payslip must lie fully inside them.
type Filter struct {
	EmployeeIDs []string
	Department  *string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

// PayslipRepository is the read side of the payslip record store.
type PayslipRepository interface {
	ListPayslips(ctx context.Context, filter Filter) ([]Payslip, error)
}
