package user

type Role string

const (
	RoleAdmin             Role = "admin"              // Full access, including deletion
	RoleFinanceStaff      Role = "finance_staff"      // All reports including year-end
	RolePayrollSpecialist Role = "payroll_specialist" // Periodic reports
	RoleEmployee          Role = "employee"           // No report access
)

// Requester identifies the caller a report is generated for.
type Requester struct {
	UserID string
	Role   Role
}
