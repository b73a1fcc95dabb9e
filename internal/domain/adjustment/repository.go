package adjustment

import (
	"context"
	"time"
)

type ListFilter struct {
	CompanyID  *string
	EmployeeID *string
	ManagerID  *string
	Status     *Status
	StartDate  *time.Time
	EndDate    *time.Time // inclusive
	Limit      int
	Offset     int
}

// AdjustmentRepository - interface for adjustment_requests table
type AdjustmentRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, filter ListFilter) ([]Request, int64, error)

	// Decide applies a terminal transition only while the request is PENDING.
	// It returns ErrAdjustmentNotFound or ErrAdjustmentAlreadyProcessed when
	// nothing was updated.
	Decide(ctx context.Context, rec DecisionRecord) (Request, error)
	LinkPunchEvent(ctx context.Context, requestID, punchEventID string) error

	// Attach sets the evidence URL only while the request is PENDING.
	Attach(ctx context.Context, requestID, attachmentURL string) (Request, error)

	// PendingDates lists the distinct dates in [from, to] that have a PENDING
	// request for the employee.
	PendingDates(ctx context.Context, employeeID string, from, to time.Time) ([]time.Time, error)
}
