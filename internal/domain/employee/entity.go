package employee

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

// Employee is the read-only view the attendance core needs. Organization
// management owns the record.
type Employee struct {
	ID           string
	CompanyID    string
	UserID       *string
	FullName     string
	ManagerID    *string
	ShiftGroupID *string

	// Individual schedule override, used when ShiftGroupID is nil.
	StartTime     *string // HH:MM
	EndTime       *string // HH:MM
	BreakDuration *int    // minutes

	Timezone  string // IANA zone name, e.g. Asia/Jakarta
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location loads the employee time zone. An empty zone means UTC.
func (e Employee) Location() (*time.Location, error) {
	if e.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, e.Timezone)
	}
	return loc, nil
}

// ReportsTo reports whether managerEmployeeID is the direct manager of e.
func (e Employee) ReportsTo(managerEmployeeID string) bool {
	return e.ManagerID != nil && *e.ManagerID == managerEmployeeID
}

// VisibleTo reports whether p may read e's attendance data: the employee
// themself, their direct manager, or an admin of the same company.
func (e Employee) VisibleTo(p user.Principal) bool {
	if e.CompanyID != p.CompanyID {
		return false
	}
	switch {
	case e.ID == p.EmployeeID:
		return true
	case p.IsAdmin():
		return true
	case p.Role == user.RoleManager:
		return e.ReportsTo(p.EmployeeID)
	}
	return false
}
