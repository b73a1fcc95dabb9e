package punch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

// maxClockSkew tolerates device clocks running slightly ahead of the server.
const maxClockSkew = time.Minute

type PunchServiceImpl struct {
	transactor database.Transactor
	punch.PunchRepository
	employee.EmployeeRepository
	now func() time.Time
}

// SubmitPunch implements punch.PunchService.
func (s *PunchServiceImpl) SubmitPunch(ctx context.Context, req punch.SubmitPunchRequest) (punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	principal, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return punch.PunchResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, principal.EmployeeID)
	if err != nil {
		return punch.PunchResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	loc, err := emp.Location()
	if err != nil {
		return punch.PunchResponse{}, err
	}

	nowUTC := s.now().UTC()
	timestamp := nowUTC
	if req.Timestamp != nil && *req.Timestamp != "" {
		// Validate already checked the format.
		parsed, _ := time.Parse(time.RFC3339Nano, *req.Timestamp)
		timestamp = parsed.UTC()
	}

	if timestamp.After(nowUTC.Add(maxClockSkew)) {
		return punch.PunchResponse{}, punch.ErrFutureTimestamp
	}
	if timestamp.After(nowUTC) {
		timestamp = nowUTC
	}

	workDate := punch.WorkDateOf(nowUTC, loc)
	if !punch.WorkDateOf(timestamp, loc).Equal(workDate) {
		return punch.PunchResponse{}, punch.ErrTimestampNotToday
	}

	kind := punch.Kind(req.Kind)
	var (
		created  punch.Event
		previous punch.State
		current  punch.State
	)

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		// Serializes concurrent submissions of the same employee.
		if err := s.EmployeeRepository.LockForUpdate(txCtx, emp.ID); err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		dayStart, dayEnd := punch.DayBounds(nowUTC, loc)
		todayEvents, err := s.PunchRepository.ListByEmployee(txCtx, emp.ID, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("failed to list today's punches: %w", err)
		}

		previous = punch.CurrentState(todayEvents)
		if err := punch.ValidateNext(todayEvents, kind); err != nil {
			return err
		}

		if n := len(todayEvents); n > 0 && timestamp.Before(todayEvents[n-1].Timestamp) {
			return fmt.Errorf("%w: timestamp precedes the last punch at %s",
				punch.ErrInvalidSequence, todayEvents[n-1].Timestamp.In(loc).Format("15:04"))
		}

		var location *punch.LocationHint
		if req.Latitude != nil && req.Longitude != nil {
			location = &punch.LocationHint{Latitude: *req.Latitude, Longitude: *req.Longitude, Accuracy: req.Accuracy}
		}

		created, err = s.PunchRepository.Create(txCtx, punch.Event{
			EmployeeID: emp.ID,
			Kind:       kind,
			Timestamp:  timestamp,
			WorkDate:   workDate,
			Location:   location,
			Source:     punch.SourceDevice,
			CreatedAt:  nowUTC,
		})
		if err != nil {
			return fmt.Errorf("failed to record punch: %w", err)
		}
		current = punch.CurrentState(append(todayEvents, created))

		return nil
	})
	if err != nil {
		if errors.Is(err, punch.ErrInvalidSequence) {
			slog.Info("punch rejected", "employee_id", emp.ID, "kind", kind, "state", previous, "reason", err.Error())
		}
		return punch.PunchResponse{}, err
	}

	slog.Info("punch recorded",
		"employee_id", emp.ID,
		"kind", created.Kind,
		"from_state", previous,
		"to_state", current,
		"work_date", workDate.Format("2006-01-02"),
	)

	return mapEventToResponse(created, loc), nil
}

// ListEvents implements punch.PunchService.
func (s *PunchServiceImpl) ListEvents(ctx context.Context, filter punch.ListPunchFilter) (punch.ListPunchResponse, error) {
	if err := filter.Validate(); err != nil {
		return punch.ListPunchResponse{}, err
	}

	principal, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return punch.ListPunchResponse{}, err
	}

	emp, err := employee.LoadVisible(ctx, s.EmployeeRepository, principal, filter.EmployeeID)
	if err != nil {
		return punch.ListPunchResponse{}, err
	}

	loc, err := emp.Location()
	if err != nil {
		return punch.ListPunchResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", filter.StartDate)
	endDate, _ := time.Parse("2006-01-02", filter.EndDate)
	from := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, loc)
	to := time.Date(endDate.Year(), endDate.Month(), endDate.Day()+1, 0, 0, 0, 0, loc)

	events, err := s.PunchRepository.ListByEmployee(ctx, emp.ID, from, to)
	if err != nil {
		return punch.ListPunchResponse{}, fmt.Errorf("failed to list punches: %w", err)
	}

	responses := make([]punch.PunchResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, mapEventToResponse(ev, loc))
	}

	return punch.ListPunchResponse{
		EmployeeID: emp.ID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Timezone:   loc.String(),
		Events:     responses,
	}, nil
}

// GetTodayStatus implements punch.PunchService.
func (s *PunchServiceImpl) GetTodayStatus(ctx context.Context) (punch.TodayStatusResponse, error) {
	principal, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return punch.TodayStatusResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, principal.EmployeeID)
	if err != nil {
		return punch.TodayStatusResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	loc, err := emp.Location()
	if err != nil {
		return punch.TodayStatusResponse{}, err
	}

	now := s.now()
	dayStart, dayEnd := punch.DayBounds(now, loc)
	events, err := s.PunchRepository.ListByEmployee(ctx, emp.ID, dayStart, dayEnd)
	if err != nil {
		return punch.TodayStatusResponse{}, fmt.Errorf("failed to list today's punches: %w", err)
	}

	state := punch.CurrentState(events)
	resp := punch.TodayStatusResponse{
		Date:     punch.WorkDateOf(now, loc).Format("2006-01-02"),
		Timezone: loc.String(),
		State:    string(state),
		Events:   make([]punch.PunchResponse, 0, len(events)),
	}
	for _, ev := range events {
		resp.Events = append(resp.Events, mapEventToResponse(ev, loc))
	}

	if next, ok := punch.NextAllowed(events); ok {
		nextStr := string(next)
		resp.NextAllowed = &nextStr
		resp.CanPunch = true
	}

	switch state {
	case punch.StateNotStarted:
		resp.Message = "You have not clocked in today"
	case punch.StateWorking:
		resp.Message = "You are working"
	case punch.StateOnBreak:
		resp.Message = "You are on break"
	case punch.StateDone:
		resp.Message = "You have clocked out for today"
	}

	return resp, nil
}

// GetEvent implements punch.PunchService.
func (s *PunchServiceImpl) GetEvent(ctx context.Context, id string) (punch.PunchResponse, error) {
	principal, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return punch.PunchResponse{}, err
	}

	ev, err := s.PunchRepository.GetByID(ctx, id)
	if err != nil {
		return punch.PunchResponse{}, err
	}

	emp, err := employee.LoadVisible(ctx, s.EmployeeRepository, principal, &ev.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return punch.PunchResponse{}, punch.ErrPunchNotFound
		}
		return punch.PunchResponse{}, err
	}

	loc, err := emp.Location()
	if err != nil {
		return punch.PunchResponse{}, err
	}

	return mapEventToResponse(ev, loc), nil
}

func mapEventToResponse(ev punch.Event, loc *time.Location) punch.PunchResponse {
	resp := punch.PunchResponse{
		ID:           ev.ID,
		EmployeeID:   ev.EmployeeID,
		Kind:         string(ev.Kind),
		Timestamp:    ev.Timestamp.In(loc).Format(time.RFC3339),
		WorkDate:     ev.WorkDate.Format("2006-01-02"),
		Source:       string(ev.Source),
		AdjustmentID: ev.AdjustmentID,
		CreatedAt:    ev.CreatedAt.UTC().Format(time.RFC3339),
	}

	if ev.Location != nil {
		resp.Location = &punch.LocationResponse{
			Latitude:  ev.Location.Latitude,
			Longitude: ev.Location.Longitude,
			Accuracy:  ev.Location.Accuracy,
		}
	}

	return resp
}

func NewPunchService(
	transactor database.Transactor,
	punchRepository punch.PunchRepository,
	employeeRepository employee.EmployeeRepository,
) punch.PunchService {
	return &PunchServiceImpl{
		transactor:         transactor,
		PunchRepository:    punchRepository,
		EmployeeRepository: employeeRepository,
		now:                time.Now,
	}
}
