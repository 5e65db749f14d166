package user

type Permission string

const (
	PermissionReportsView           Permission = "reports.view"
	PermissionReportsGenerate       Permission = "reports.generate"
	PermissionReportsGenerateAnnual Permission = "reports.generate_annual"
	PermissionReportsDelete         Permission = "reports.delete"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionReportsView,
		PermissionReportsGenerate,
		PermissionReportsGenerateAnnual,
		PermissionReportsDelete,
	},
	RoleFinanceStaff: {
		PermissionReportsView,
		PermissionReportsGenerate,
		PermissionReportsGenerateAnnual,
	},
	RolePayrollSpecialist: {
		PermissionReportsView,
		PermissionReportsGenerate,
	},
	RoleEmployee: {},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
