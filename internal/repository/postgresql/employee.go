package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-report-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, employee_code, first_name, last_name, department, position, is_active`

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context, department *string) ([]employee.Ref, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_active = TRUE`
	var args []interface{}
	if department != nil {
		query += ` AND department = $1`
		args = append(args, *department)
	}
	query += ` ORDER BY last_name, first_name, id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	return scanEmployees(rows)
}

// GetByIDs implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]employee.Ref, error) {
	if len(ids) == 0 {
		return []employee.Ref{}, nil
	}

	q := GetQuerier(ctx, e.db)
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ANY($1::uuid[])`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees by ids: %w", err)
	}
	return scanEmployees(rows)
}

func scanEmployees(rows pgx.Rows) ([]employee.Ref, error) {
	defer rows.Close()

	employees := []employee.Ref{}
	for rows.Next() {
		var ref employee.Ref
		if err := rows.Scan(
			&ref.ID, &ref.EmployeeCode, &ref.FirstName, &ref.LastName,
			&ref.Department, &ref.Position, &ref.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}
