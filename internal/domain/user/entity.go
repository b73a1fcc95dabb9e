package user

type Role string

const (
	RoleAdmin    Role = "admin"    // HR administrator - full access
	RoleManager  Role = "manager"  // Decides adjustments of direct reports
	RoleEmployee Role = "employee" // Regular employee
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleManager),
	string(RoleEmployee),
}

// Principal is the caller identity carried by the access token.
type Principal struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       Role
}

// IsAdmin checks if the caller is an administrator
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsManager checks if the caller is manager or admin
func (p Principal) IsManager() bool {
	return p.Role == RoleManager || p.Role == RoleAdmin
}

// CanViewEmployee reports whether the caller may read another employee's
// punches and reports. Managers are further restricted to direct reports by
// the services.
func (p Principal) CanViewEmployee(employeeID string) bool {
	return p.EmployeeID == employeeID || p.IsManager()
}
