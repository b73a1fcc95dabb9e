package schedule

import (
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestResolve(t *testing.T) {
	group := &ShiftGroup{ID: "sg-1", StartTime: "08:00", EndTime: "16:30", BreakDuration: 30}

	tests := []struct {
		name  string
		emp   employee.Employee
		group *ShiftGroup
		want  ExpectedSchedule
	}{
		{
			name:  "shift group wins over individual times",
			emp:   employee.Employee{ID: "e1", ShiftGroupID: strPtr("sg-1"), StartTime: strPtr("10:00"), EndTime: strPtr("12:00")},
			group: group,
			want:  ExpectedSchedule{StartMinute: 480, EndMinute: 990, BreakMinutes: 30, Source: SourceShiftGroup},
		},
		{
			name: "individual times",
			emp:  employee.Employee{ID: "e2", StartTime: strPtr("07:00"), EndTime: strPtr("15:00"), BreakDuration: intPtr(45)},
			want: ExpectedSchedule{StartMinute: 420, EndMinute: 900, BreakMinutes: 45, Source: SourceIndividual},
		},
		{
			name: "individual times without break use default break",
			emp:  employee.Employee{ID: "e3", StartTime: strPtr("07:00"), EndTime: strPtr("15:00")},
			want: ExpectedSchedule{StartMinute: 420, EndMinute: 900, BreakMinutes: 60, Source: SourceIndividual},
		},
		{
			name: "system default",
			emp:  employee.Employee{ID: "e4"},
			want: ExpectedSchedule{StartMinute: 540, EndMinute: 1020, BreakMinutes: 60, Source: SourceDefault},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.emp, tt.group, SystemDefault)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name  string
		emp   employee.Employee
		group *ShiftGroup
	}{
		{"malformed shift group start", employee.Employee{ShiftGroupID: strPtr("sg")}, &ShiftGroup{ID: "sg", StartTime: "9am", EndTime: "17:00"}},
		{"shift group ends before it starts", employee.Employee{ShiftGroupID: strPtr("sg")}, &ShiftGroup{ID: "sg", StartTime: "17:00", EndTime: "09:00"}},
		{"break longer than window", employee.Employee{ShiftGroupID: strPtr("sg")}, &ShiftGroup{ID: "sg", StartTime: "09:00", EndTime: "10:00", BreakDuration: 61}},
		{"missing shift group", employee.Employee{ShiftGroupID: strPtr("sg")}, nil},
		{"only start time", employee.Employee{StartTime: strPtr("09:00")}, nil},
		{"negative individual break", employee.Employee{StartTime: strPtr("09:00"), EndTime: strPtr("17:00"), BreakDuration: intPtr(-5)}, nil},
		{"out of range clock", employee.Employee{StartTime: strPtr("09:00"), EndTime: strPtr("24:00")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.emp, tt.group, SystemDefault)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestResolve_MissingShiftGroupWrapsNotFound(t *testing.T) {
	_, err := Resolve(employee.Employee{ID: "e1", ShiftGroupID: strPtr("sg-x")}, nil, SystemDefault)
	assert.ErrorIs(t, err, ErrShiftGroupNotFound)
}

func TestValidateDefault(t *testing.T) {
	sched, err := ValidateDefault(SystemDefault)
	require.NoError(t, err)
	assert.Equal(t, 420, sched.NetMinutes())

	_, err = ValidateDefault(Default{StartTime: "18:00", EndTime: "09:00", BreakDuration: 60})
	assert.ErrorIs(t, err, ErrConfiguration)
}
