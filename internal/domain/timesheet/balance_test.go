package timesheet

import (
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
)

func TestBalance(t *testing.T) {
	expected := schedule.ExpectedSchedule{StartMinute: 540, EndMinute: 1020, BreakMinutes: 60}

	assert.Equal(t, 0, Balance(DayReport{WorkedMinutes: 420}, expected))
	assert.Equal(t, -90, Balance(DayReport{WorkedMinutes: 330}, expected))
	assert.Equal(t, 45, Balance(DayReport{WorkedMinutes: 465}, expected))
	assert.Equal(t, -420, Balance(DayReport{Status: DayStatusAbsent}, expected))
}

func TestSummarize_CountsOnlyClosedDays(t *testing.T) {
	expected := schedule.ExpectedSchedule{StartMinute: 540, EndMinute: 1020, BreakMinutes: 60}
	reports := ApplyBalance([]DayReport{
		{Status: DayStatusComplete, WorkedMinutes: 450, BreakMinutes: 60},
		{Status: DayStatusIncomplete, WorkedMinutes: 200, BreakMinutes: 0},
		{Status: DayStatusAbsent},
		{Status: DayStatusInProgress, WorkedMinutes: 100},
	}, expected)

	totals := Summarize(reports)

	assert.Equal(t, 650, totals.WorkedMinutes)
	assert.Equal(t, 60, totals.BreakMinutes)
	assert.Equal(t, 30-220, totals.BalanceMinutes)
	assert.Equal(t, 2, totals.CountedDays)
	assert.Equal(t, 1, totals.CompleteDays)
	assert.Equal(t, 1, totals.IncompleteDays)
	assert.Equal(t, 1, totals.AbsentDays)
	assert.Equal(t, 1, totals.InProgressDays)
}

func TestFormatMinutes(t *testing.T) {
	cases := map[int]string{
		0:    "00:00",
		59:   "00:59",
		480:  "08:00",
		1500: "25:00",
		-1:   "-00:01",
		-90:  "-01:30",
		-600: "-10:00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatMinutes(in), in)
	}
}
