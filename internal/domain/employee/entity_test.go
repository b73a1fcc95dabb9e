package employee

import (
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	loc, err := Employee{}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	loc, err = Employee{Timezone: "Asia/Jakarta"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", loc.String())

	_, err = Employee{Timezone: "Mars/Olympus"}.Location()
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestVisibleTo(t *testing.T) {
	manager := "mgr-1"
	emp := Employee{ID: "emp-1", CompanyID: "c-1", ManagerID: &manager}

	tests := []struct {
		name string
		p    user.Principal
		want bool
	}{
		{"self", user.Principal{EmployeeID: "emp-1", CompanyID: "c-1", Role: user.RoleEmployee}, true},
		{"direct manager", user.Principal{EmployeeID: "mgr-1", CompanyID: "c-1", Role: user.RoleManager}, true},
		{"other manager", user.Principal{EmployeeID: "mgr-2", CompanyID: "c-1", Role: user.RoleManager}, false},
		{"admin", user.Principal{EmployeeID: "adm", CompanyID: "c-1", Role: user.RoleAdmin}, true},
		{"admin of another company", user.Principal{EmployeeID: "adm", CompanyID: "c-2", Role: user.RoleAdmin}, false},
		{"colleague", user.Principal{EmployeeID: "emp-2", CompanyID: "c-1", Role: user.RoleEmployee}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, emp.VisibleTo(tt.p))
		})
	}
}
