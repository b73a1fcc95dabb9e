package adjustment

import (
	"io"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const maxReasonLength = 500

// ========================================
// ADJUSTMENT REQUEST DTOs
// ========================================

type CreateAdjustmentRequest struct {
	Date          string  `json:"date"`           // YYYY-MM-DD
	EntryType     string  `json:"entry_type"`     // CLOCK_IN, BREAK_START, BREAK_END, CLOCK_OUT
	RequestedTime string  `json:"requested_time"` // HH:MM
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
}

func (r *CreateAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	r.EntryType = strings.ToUpper(strings.TrimSpace(r.EntryType))
	if !validator.IsInSlice(r.EntryType, punch.KindValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_type",
			Message: "entry_type must be one of: " + strings.Join(punch.KindValues, ", "),
		})
	}

	if !validator.IsValidClock(r.RequestedTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_time",
			Message: "requested_time must be in HH:MM format",
		})
	}

	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if len(r.Reason) > maxReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if r.AttachmentURL != nil && validator.IsEmpty(*r.AttachmentURL) {
		r.AttachmentURL = nil
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecideRequest struct {
	Decision string  `json:"decision,omitempty"` // APPROVE or REJECT, only for the decision endpoint
	Comment  *string `json:"comment,omitempty"`
}

func (r *DecideRequest) Validate(requireDecision bool) error {
	var errs validator.ValidationErrors

	r.Decision = strings.ToUpper(strings.TrimSpace(r.Decision))
	if requireDecision && !validator.IsInSlice(r.Decision, DecisionValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be one of: " + strings.Join(DecisionValues, ", "),
		})
	}

	if r.Comment != nil && len(*r.Comment) > maxReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "comment",
			Message: "comment must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttachEvidenceRequest struct {
	File     io.Reader
	Filename string
	Size     int64
}

const MaxAttachmentSize = 5 << 20

func (r *AttachEvidenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.File == nil || validator.IsEmpty(r.Filename) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "file is required",
		})
	}

	if r.Size > MaxAttachmentSize {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "file must not exceed 5MB",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdjustmentFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AdjustmentFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		status := strings.ToUpper(*f.Status)
		f.Status = &status
		if !validator.IsInSlice(status, StatusValues) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: " + strings.Join(StatusValues, ", "),
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdjustmentResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	ManagerID       *string `json:"manager_id,omitempty"`
	Date            string  `json:"date"`
	EntryType       string  `json:"entry_type"`
	RequestedTime   string  `json:"requested_time"`
	Reason          string  `json:"reason"`
	AttachmentURL   *string `json:"attachment_url,omitempty"`
	Status          string  `json:"status"`
	DecidedBy       *string `json:"decided_by,omitempty"`
	ResponseComment *string `json:"response_comment,omitempty"`
	ResponseDate    *string `json:"response_date,omitempty"`
	PunchEventID    *string `json:"punch_event_id,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type ListAdjustmentResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Adjustments []AdjustmentResponse `json:"adjustments"`
}
