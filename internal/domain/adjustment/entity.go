package adjustment

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

var StatusValues = []string{
	string(StatusPending),
	string(StatusApproved),
	string(StatusRejected),
}

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

var DecisionValues = []string{
	string(DecisionApprove),
	string(DecisionReject),
}

// Status returns the terminal status a decision moves a request to.
func (d Decision) Status() Status {
	if d == DecisionApprove {
		return StatusApproved
	}
	return StatusRejected
}

// Request is an employee's proposed correction of one punch kind on one day.
// It moves from PENDING to APPROVED or REJECTED exactly once and is never
// deleted.
type Request struct {
	ID            string
	EmployeeID    string
	ManagerID     *string // approver captured at creation
	Date          time.Time
	EntryType     punch.Kind
	RequestedTime string // HH:MM, employee local time
	Reason        string
	AttachmentURL *string

	Status          Status
	DecidedBy       *string
	ResponseComment *string
	ResponseDate    *time.Time
	PunchEventID    *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
}

func (r Request) IsPending() bool {
	return r.Status == StatusPending
}

// RequestedInstant is the corrected punch time: Date plus RequestedTime read
// as wall clock in loc.
func (r Request) RequestedInstant(loc *time.Location) (time.Time, error) {
	minute, ok := validator.ParseClock(r.RequestedTime)
	if !ok {
		return time.Time{}, fmt.Errorf("malformed requested time %q", r.RequestedTime)
	}
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), minute/60, minute%60, 0, 0, loc), nil
}

// DecisionRecord carries the fields written by a terminal transition.
type DecisionRecord struct {
	RequestID string
	Status    Status
	DecidedBy string
	Comment   *string
	DecidedAt time.Time
}
