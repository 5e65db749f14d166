package employee

import "context"

// EmployeeRepository is the read side of the employee record store.
type EmployeeRepository interface {
	// ListActive returns active employees, optionally limited to one department.
	ListActive(ctx context.Context, department *string) ([]Ref, error)

	// GetByIDs resolves employee references in bulk. Unknown IDs are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]Ref, error)
}
