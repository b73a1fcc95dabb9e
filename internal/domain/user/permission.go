package user

type Permission string

const (
	// Punches
	PermissionPunchCreate  Permission = "punch.create"
	PermissionPunchViewOwn Permission = "punch.view_own"
	PermissionPunchViewAll Permission = "punch.view_all"

	// Adjustments
	PermissionAdjustmentCreate  Permission = "adjustment.create"
	PermissionAdjustmentViewAll Permission = "adjustment.view_all"
	PermissionAdjustmentApprove Permission = "adjustment.approve"

	// Reports
	PermissionReportsViewOwn Permission = "reports.view_own"
	PermissionReportsView    Permission = "reports.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionPunchCreate,
		PermissionPunchViewOwn,
		PermissionPunchViewAll,
		PermissionAdjustmentCreate,
		PermissionAdjustmentViewAll,
		PermissionAdjustmentApprove,
		PermissionReportsViewOwn,
		PermissionReportsView,
	},
	RoleManager: {
		PermissionPunchCreate,
		PermissionPunchViewOwn,
		PermissionPunchViewAll,
		PermissionAdjustmentCreate,
		PermissionAdjustmentViewAll,
		PermissionAdjustmentApprove,
		PermissionReportsViewOwn,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionPunchCreate,
		PermissionPunchViewOwn,
		PermissionAdjustmentCreate,
		PermissionReportsViewOwn,
	},
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
