package schedule

type ExpectedScheduleResponse struct {
	EmployeeID   string `json:"employee_id"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
	NetMinutes   int    `json:"net_minutes"`
	Source       string `json:"source"`
	Timezone     string `json:"timezone"`
}

func NewExpectedScheduleResponse(employeeID, timezone string, s ExpectedSchedule) ExpectedScheduleResponse {
	return ExpectedScheduleResponse{
		EmployeeID:   employeeID,
		StartTime:    Clock(s.StartMinute),
		EndTime:      Clock(s.EndMinute),
		BreakMinutes: s.BreakMinutes,
		NetMinutes:   s.NetMinutes(),
		Source:       string(s.Source),
		Timezone:     timezone,
	}
}
