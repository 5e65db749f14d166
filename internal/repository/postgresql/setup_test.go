package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-report-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-report-engine/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBErr  error
	testDBOnce sync.Once
)

// openTestDB connects to TEST_DATABASE_URL and applies migrations once.
// Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		if testDBErr = database.RunMigrations(dsn); testDBErr != nil {
			return
		}
		testDB, testDBErr = database.NewPostgreSQLDB(context.Background(), dsn, database.PoolConfig{})
	})
	require.NoError(t, testDBErr)
	return testDB
}

// txContext opens a transaction that is rolled back when the test ends and
// returns a context that routes repository calls through it.
func txContext(t *testing.T, db *database.DB) context.Context {
	t.Helper()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	return postgresql.ContextWithTx(ctx, tx)
}

func insertEmployee(t *testing.T, ctx context.Context, db *database.DB, code, first, last, dept string, active bool) string {
	t.Helper()

	var id string
	err := postgresql.GetQuerier(ctx, db).QueryRow(ctx, `
		INSERT INTO employees (employee_code, first_name, last_name, department, position, is_active)
		VALUES ($1, $2, $3, $4, 'Engineer', $5)
		RETURNING id
	`, code, first, last, dept, active).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertPayslip(t *testing.T, ctx context.Context, db *database.DB, employeeID string, start, end time.Time, gross, deductions string) string {
	t.Helper()

	var id string
	err := postgresql.GetQuerier(ctx, db).QueryRow(ctx, `
		INSERT INTO payslips (
			employee_id, pay_period_start, pay_period_end, pay_date,
			base_salary, gross_pay, income_tax, total_deductions, net_pay, status
		) VALUES (
			$1, $2, $3, $3,
			$4::numeric, $4::numeric, $5::numeric, $5::numeric, $4::numeric - $5::numeric, 'processed'
		)
		RETURNING id
	`, employeeID, start, end, gross, deductions).Scan(&id)
	require.NoError(t, err)
	return id
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
