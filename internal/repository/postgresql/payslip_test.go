package postgresql_test

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-report-engine/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayslipRepository_ListPayslips(t *testing.T) {
	db := openTestDB(t)
	ctx := txContext(t, db)
	repo := postgresql.NewPayslipRepository(db)

	dept := "Repo Test Finance"
	emp := insertEmployee(t, ctx, db, "RT-100", "Grace", "Hopper", dept, true)
	other := insertEmployee(t, ctx, db, "RT-101", "Alan", "Turing", "Repo Test Research", true)

	inside := insertPayslip(t, ctx, db, emp, day(2031, time.March, 1), day(2031, time.March, 31), "1000.50", "200.25")
	insertPayslip(t, ctx, db, emp, day(2031, time.February, 15), day(2031, time.March, 14), "900", "100")
	insertPayslip(t, ctx, db, other, day(2031, time.March, 1), day(2031, time.March, 31), "800", "80")

	start, end := day(2031, time.March, 1), day(2031, time.March, 31)

	t.Run("window excludes partial overlap", func(t *testing.T) {
		got, err := repo.ListPayslips(ctx, payslip.Filter{
			EmployeeIDs: []string{emp},
			PeriodStart: &start,
			PeriodEnd:   &end,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, inside, got[0].ID)
		assert.True(t, decimal.RequireFromString("1000.50").Equal(got[0].GrossPay))
		assert.True(t, decimal.RequireFromString("800.25").Equal(got[0].NetPay))
		assert.Equal(t, payslip.StatusProcessed, got[0].Status)
	})

	t.Run("department filter", func(t *testing.T) {
		got, err := repo.ListPayslips(ctx, payslip.Filter{
			Department:  &dept,
			PeriodStart: &start,
			PeriodEnd:   &end,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, emp, got[0].EmployeeID)
	})

	t.Run("empty id list matches nothing", func(t *testing.T) {
		got, err := repo.ListPayslips(ctx, payslip.Filter{EmployeeIDs: []string{}})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
