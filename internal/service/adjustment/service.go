package adjustment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/file"
)

type AdjustmentServiceImpl struct {
	transactor database.Transactor
	adjustment.AdjustmentRepository
	punch.PunchRepository
	employee.EmployeeRepository
	fileService file.FileService
	now         func() time.Time
}

// Create implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) Create(ctx context.Context, req adjustment.CreateAdjustmentRequest) (adjustment.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	principal, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, principal.EmployeeID)
	if err != nil {
		return adjustment.AdjustmentResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	loc, err := emp.Location()
	if err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	request := adjustment.Request{
		EmployeeID:    emp.ID,
		ManagerID:     emp.ManagerID,
		Date:          date,
		EntryType:     punch.Kind(req.EntryType),
		RequestedTime: req.RequestedTime,
		Reason:        req.Reason,
		AttachmentURL: req.AttachmentURL,
		Status:        adjustment.StatusPending,
	}

	requested, err := request.RequestedInstant(loc)
	if err != nil {
		return adjustment.AdjustmentResponse{}, err
	}
	if requested.After(s.now()) {
		return adjustment.AdjustmentResponse{}, adjustment.ErrFutureDate
	}

	created, err := s.AdjustmentRepository.Create(ctx, request)
	if err != nil {
		return adjustment.AdjustmentResponse{}, fmt.Errorf("failed to create adjustment request: %w", err)
	}

	slog.Info("adjustment requested",
		"adjustment_id", created.ID,
		"employee_id", created.EmployeeID,
		"manager_id", created.ManagerID,
		"date", req.Date,
		"entry_type", created.EntryType,
	)

	return mapRequestToResponse(created), nil
}

// Approve implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) Approve(ctx context.Context, id string, req adjustment.DecideRequest) (adjustment.AdjustmentResponse, error) {
	if err := req.Validate(false); err != nil {
		return adjustment.AdjustmentResponse{}, err
	}
	return s.decide(ctx, id, adjustment.DecisionApprove, req.Comment)
}

// Reject implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) Reject(ctx context.Context, id string, req adjustment.DecideRequest) (adjustment.AdjustmentResponse, error) {
	if err := req.Validate(false); err != nil {
		return adjustment.AdjustmentResponse{}, err
	}
	return s.decide(ctx, id, adjustment.DecisionReject, req.Comment)
}

// Decide implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) Decide(ctx context.Context, id string, req adjustment.DecideRequest) (adjustment.AdjustmentResponse, error) {
	if err := req.Validate(true); err != nil {
		return adjustment.AdjustmentResponse{}, err
	}
	return s.decide(ctx, id, adjustment.Decision(req.Decision), req.Comment)
}

func (s *AdjustmentServiceImpl) decide(ctx context.Context, id string, decision adjustment.Decision, comment *string) (adjustment.AdjustmentResponse, error) {
	principal, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	request, emp, err := s.loadForCompany(ctx, principal, id)
	if err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	if request.EmployeeID == principal.EmployeeID {
		return adjustment.AdjustmentResponse{}, fmt.Errorf("%w: cannot decide your own request", adjustment.ErrUnauthorized)
	}
	assigned := request.ManagerID != nil && *request.ManagerID == principal.EmployeeID
	if !assigned && !principal.IsAdmin() {
		return adjustment.AdjustmentResponse{}, adjustment.ErrUnauthorized
	}

	loc, err := emp.Location()
	if err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	decidedAt := s.now().UTC()
	// A correction for today lands in the log SubmitPunch validates against.
	lockEmployee := decision == adjustment.DecisionApprove &&
		request.Date.Equal(punch.WorkDateOf(decidedAt, loc))
	var decided adjustment.Request

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if lockEmployee {
			if err := s.EmployeeRepository.LockForUpdate(txCtx, request.EmployeeID); err != nil {
				return fmt.Errorf("failed to lock employee: %w", err)
			}
		}

		decided, err = s.AdjustmentRepository.Decide(txCtx, adjustment.DecisionRecord{
			RequestID: id,
			Status:    decision.Status(),
			DecidedBy: principal.EmployeeID,
			Comment:   comment,
			DecidedAt: decidedAt,
		})
		if err != nil {
			return err
		}

		if decision != adjustment.DecisionApprove {
			return nil
		}

		timestamp, err := decided.RequestedInstant(loc)
		if err != nil {
			return err
		}

		adjustmentID := decided.ID
		event, err := s.PunchRepository.Create(txCtx, punch.Event{
			EmployeeID:   decided.EmployeeID,
			Kind:         decided.EntryType,
			Timestamp:    timestamp.UTC(),
			WorkDate:     punch.WorkDateOf(timestamp, loc),
			Source:       punch.SourceAdjustment,
			AdjustmentID: &adjustmentID,
			CreatedAt:    decidedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to record corrected punch: %w", err)
		}

		if err := s.AdjustmentRepository.LinkPunchEvent(txCtx, decided.ID, event.ID); err != nil {
			return fmt.Errorf("failed to link corrected punch: %w", err)
		}
		decided.PunchEventID = &event.ID

		return nil
	})
	if err != nil {
		if errors.Is(err, adjustment.ErrAdjustmentAlreadyProcessed) {
			slog.Info("adjustment decision rejected", "adjustment_id", id, "decided_by", principal.EmployeeID, "reason", err.Error())
		}
		return adjustment.AdjustmentResponse{}, err
	}

	slog.Info("adjustment decided",
		"adjustment_id", decided.ID,
		"employee_id", decided.EmployeeID,
		"from_status", adjustment.StatusPending,
		"to_status", decided.Status,
		"decided_by", principal.EmployeeID,
		"punch_event_id", decided.PunchEventID,
	)

	return mapRequestToResponse(decided), nil
}

// AttachEvidence implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) AttachEvidence(ctx context.Context, id string, req adjustment.AttachEvidenceRequest) (adjustment.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	principal, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	request, _, err := s.loadForCompany(ctx, principal, id)
	if err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	if request.EmployeeID != principal.EmployeeID {
		return adjustment.AdjustmentResponse{}, fmt.Errorf("%w: only the requester may attach evidence", adjustment.ErrUnauthorized)
	}
	if !request.IsPending() {
		return adjustment.AdjustmentResponse{}, fmt.Errorf("%w: status is %s", adjustment.ErrAdjustmentAlreadyProcessed, request.Status)
	}

	url, err := s.fileService.UploadAdjustmentEvidence(ctx, request.EmployeeID, request.ID, req.File, req.Filename)
	if err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	updated, err := s.AdjustmentRepository.Attach(ctx, request.ID, url)
	if err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	return mapRequestToResponse(updated), nil
}

// Get implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) Get(ctx context.Context, id string) (adjustment.AdjustmentResponse, error) {
	principal, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	request, _, err := s.loadForCompany(ctx, principal, id)
	if err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	isOwner := request.EmployeeID == principal.EmployeeID
	isApprover := request.ManagerID != nil && *request.ManagerID == principal.EmployeeID
	if !isOwner && !isApprover && !principal.IsAdmin() {
		return adjustment.AdjustmentResponse{}, adjustment.ErrUnauthorized
	}

	return mapRequestToResponse(request), nil
}

// ListMy implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) ListMy(ctx context.Context, filter adjustment.AdjustmentFilter) (adjustment.ListAdjustmentResponse, error) {
	principal, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return adjustment.ListAdjustmentResponse{}, err
	}

	return s.list(ctx, filter, adjustment.ListFilter{EmployeeID: &principal.EmployeeID})
}

// List implements adjustment.AdjustmentService. Managers see requests
// assigned to them, admins every request of their company.
func (s *AdjustmentServiceImpl) List(ctx context.Context, filter adjustment.AdjustmentFilter) (adjustment.ListAdjustmentResponse, error) {
	principal, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return adjustment.ListAdjustmentResponse{}, err
	}

	scope := adjustment.ListFilter{CompanyID: &principal.CompanyID, EmployeeID: filter.EmployeeID}
	switch {
	case principal.IsAdmin():
	case principal.Role == user.RoleManager:
		scope.ManagerID = &principal.EmployeeID
	default:
		return adjustment.ListAdjustmentResponse{}, user.ErrManagerAccessRequired
	}

	return s.list(ctx, filter, scope)
}

func (s *AdjustmentServiceImpl) list(ctx context.Context, filter adjustment.AdjustmentFilter, scope adjustment.ListFilter) (adjustment.ListAdjustmentResponse, error) {
	if err := filter.Validate(); err != nil {
		return adjustment.ListAdjustmentResponse{}, err
	}

	if filter.Status != nil {
		status := adjustment.Status(*filter.Status)
		scope.Status = &status
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		d, _ := time.Parse("2006-01-02", *filter.StartDate)
		scope.StartDate = &d
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		d, _ := time.Parse("2006-01-02", *filter.EndDate)
		scope.EndDate = &d
	}
	scope.Limit = filter.Limit
	scope.Offset = (filter.Page - 1) * filter.Limit

	requests, total, err := s.AdjustmentRepository.List(ctx, scope)
	if err != nil {
		return adjustment.ListAdjustmentResponse{}, fmt.Errorf("failed to list adjustment requests: %w", err)
	}

	responses := make([]adjustment.AdjustmentResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, mapRequestToResponse(r))
	}

	return adjustment.ListAdjustmentResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Adjustments: responses,
	}, nil
}

// loadForCompany loads a request and its employee. Requests of another
// company are reported as not found.
func (s *AdjustmentServiceImpl) loadForCompany(ctx context.Context, principal user.Principal, id string) (adjustment.Request, employee.Employee, error) {
	request, err := s.AdjustmentRepository.GetByID(ctx, id)
	if err != nil {
		return adjustment.Request{}, employee.Employee{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, request.EmployeeID)
	if err != nil {
		return adjustment.Request{}, employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.CompanyID != principal.CompanyID {
		return adjustment.Request{}, employee.Employee{}, adjustment.ErrAdjustmentNotFound
	}

	return request, emp, nil
}

func mapRequestToResponse(r adjustment.Request) adjustment.AdjustmentResponse {
	resp := adjustment.AdjustmentResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		ManagerID:       r.ManagerID,
		Date:            r.Date.Format("2006-01-02"),
		EntryType:       string(r.EntryType),
		RequestedTime:   r.RequestedTime,
		Reason:          r.Reason,
		AttachmentURL:   r.AttachmentURL,
		Status:          string(r.Status),
		DecidedBy:       r.DecidedBy,
		ResponseComment: r.ResponseComment,
		PunchEventID:    r.PunchEventID,
		CreatedAt:       r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if r.ResponseDate != nil {
		responseDate := r.ResponseDate.UTC().Format(time.RFC3339)
		resp.ResponseDate = &responseDate
	}

	return resp
}

func NewAdjustmentService(
	transactor database.Transactor,
	adjustmentRepository adjustment.AdjustmentRepository,
	punchRepository punch.PunchRepository,
	employeeRepository employee.EmployeeRepository,
	fileService file.FileService,
) adjustment.AdjustmentService {
	return &AdjustmentServiceImpl{
		transactor:           transactor,
		AdjustmentRepository: adjustmentRepository,
		PunchRepository:      punchRepository,
		EmployeeRepository:   employeeRepository,
		fileService:          fileService,
		now:                  time.Now,
	}
}
