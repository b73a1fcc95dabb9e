package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type TimesheetServiceImpl struct {
	punch.PunchRepository
	employee.EmployeeRepository
	adjustment.AdjustmentRepository
	scheduleService schedule.ScheduleService
	now             func() time.Time
}

// GetMonthlyReport implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetMonthlyReport(ctx context.Context, req timesheet.MonthlyReportRequest) (timesheet.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.MonthlyReportResponse{}, err
	}
	return s.buildMonthlyReport(ctx, req)
}

func (s *TimesheetServiceImpl) buildMonthlyReport(ctx context.Context, req timesheet.MonthlyReportRequest) (timesheet.MonthlyReportResponse, error) {
	principal, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return timesheet.MonthlyReportResponse{}, err
	}

	emp, err := employee.LoadVisible(ctx, s.EmployeeRepository, principal, req.EmployeeID)
	if err != nil {
		return timesheet.MonthlyReportResponse{}, err
	}

	loc, err := emp.Location()
	if err != nil {
		return timesheet.MonthlyReportResponse{}, err
	}

	periodStart, periodEnd := req.Period()
	from := time.Date(periodStart.Year(), periodStart.Month(), periodStart.Day(), 0, 0, 0, 0, loc)
	to := time.Date(periodEnd.Year(), periodEnd.Month(), periodEnd.Day()+1, 0, 0, 0, 0, loc)

	var (
		events       []punch.Event
		expected     schedule.ExpectedSchedule
		pendingDates []time.Time
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		events, err = s.PunchRepository.ListByEmployee(gCtx, emp.ID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list punches: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		expected, err = s.scheduleService.ResolveFor(gCtx, emp)
		return err
	})

	g.Go(func() error {
		var err error
		pendingDates, err = s.AdjustmentRepository.PendingDates(gCtx, emp.ID, periodStart, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to list pending adjustments: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return timesheet.MonthlyReportResponse{}, err
	}

	now := s.now()
	reports := timesheet.Reconcile(events, periodStart, periodEnd, now, loc)
	reports = timesheet.ApplyBalance(reports, expected)
	totals := timesheet.Summarize(reports)

	pending := make(map[time.Time]bool, len(pendingDates))
	for _, d := range pendingDates {
		pending[d.UTC()] = true
	}

	days := make([]timesheet.DayReportResponse, 0, len(reports))
	for _, r := range reports {
		days = append(days, mapDayToResponse(r, loc, pending[r.Date]))
	}

	return timesheet.MonthlyReportResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Timezone:     loc.String(),
		PeriodMonth:  req.Month,
		PeriodYear:   req.Year,
		PeriodStart:  periodStart.Format("2006-01-02"),
		PeriodEnd:    periodEnd.Format("2006-01-02"),
		GeneratedAt:  now.In(loc).Format(time.RFC3339),
		Schedule: timesheet.ScheduleSummary{
			StartTime:    schedule.Clock(expected.StartMinute),
			EndTime:      schedule.Clock(expected.EndMinute),
			BreakMinutes: expected.BreakMinutes,
			NetMinutes:   expected.NetMinutes(),
			Source:       string(expected.Source),
		},
		Summary: timesheet.MonthlySummary{
			WorkedMinutes:      totals.WorkedMinutes,
			BreakMinutes:       totals.BreakMinutes,
			BalanceMinutes:     totals.BalanceMinutes,
			Worked:             timesheet.FormatMinutes(totals.WorkedMinutes),
			Balance:            timesheet.FormatMinutes(totals.BalanceMinutes),
			WorkedHours:        timesheet.Hours(totals.WorkedMinutes),
			BalanceHours:       timesheet.Hours(totals.BalanceMinutes),
			CountedDays:        totals.CountedDays,
			CompleteDays:       totals.CompleteDays,
			IncompleteDays:     totals.IncompleteDays,
			AbsentDays:         totals.AbsentDays,
			InProgressDays:     totals.InProgressDays,
			PendingAdjustments: len(pending),
		},
		Days: days,
	}, nil
}

// ExportMonthlyReport implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ExportMonthlyReport(ctx context.Context, req timesheet.ExportMonthlyReportRequest) (timesheet.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return timesheet.ExportFile{}, err
	}

	report, err := s.buildMonthlyReport(ctx, req.MonthlyReportRequest)
	if err != nil {
		return timesheet.ExportFile{}, err
	}

	base := fmt.Sprintf("attendance_%s_%04d-%02d", report.EmployeeID, report.PeriodYear, report.PeriodMonth)

	switch timesheet.ExportFormat(req.Format) {
	case timesheet.ExportFormatCSV:
		content, err := renderCSV(report)
		if err != nil {
			return timesheet.ExportFile{}, fmt.Errorf("failed to render csv: %w", err)
		}
		return timesheet.ExportFile{
			Filename:    base + ".csv",
			ContentType: "text/csv; charset=utf-8",
			Content:     content,
		}, nil
	case timesheet.ExportFormatXLSX:
		content, err := renderXLSX(report)
		if err != nil {
			return timesheet.ExportFile{}, fmt.Errorf("failed to render xlsx: %w", err)
		}
		return timesheet.ExportFile{
			Filename:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	}

	return timesheet.ExportFile{}, errors.New("unsupported export format")
}

func mapDayToResponse(r timesheet.DayReport, loc *time.Location, hasPending bool) timesheet.DayReportResponse {
	return timesheet.DayReportResponse{
		Date:                 r.Date.Format("2006-01-02"),
		DayOfWeek:            r.Date.Weekday().String(),
		ClockIn:              clockOf(r.ClockIn, loc),
		BreakStart:           clockOf(r.BreakStart, loc),
		BreakEnd:             clockOf(r.BreakEnd, loc),
		ClockOut:             clockOf(r.ClockOut, loc),
		WorkedMinutes:        r.WorkedMinutes,
		BreakMinutes:         r.BreakMinutes,
		BalanceMinutes:       r.BalanceMinutes,
		Worked:               timesheet.FormatMinutes(r.WorkedMinutes),
		Balance:              timesheet.FormatMinutes(r.BalanceMinutes),
		WorkedHours:          timesheet.Hours(r.WorkedMinutes),
		Status:               string(r.Status),
		HasPendingAdjustment: hasPending,
	}
}

func clockOf(ev *punch.Event, loc *time.Location) *string {
	if ev == nil {
		return nil
	}
	s := ev.Timestamp.In(loc).Format("15:04")
	return &s
}

func NewTimesheetService(
	punchRepository punch.PunchRepository,
	employeeRepository employee.EmployeeRepository,
	adjustmentRepository adjustment.AdjustmentRepository,
	scheduleService schedule.ScheduleService,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		PunchRepository:      punchRepository,
		EmployeeRepository:   employeeRepository,
		AdjustmentRepository: adjustmentRepository,
		scheduleService:      scheduleService,
		now:                  time.Now,
	}
}
