package punch

import (
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

type SubmitPunchRequest struct {
	Kind      string   `json:"kind"`
	Timestamp *string  `json:"timestamp,omitempty"` // RFC3339, defaults to server time
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

func (r *SubmitPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Kind = strings.ToUpper(strings.TrimSpace(r.Kind))
	if validator.IsEmpty(r.Kind) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind is required",
		})
	} else if !validator.IsInSlice(r.Kind, KindValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: " + strings.Join(KindValues, ", "),
		})
	}

	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be an RFC3339 date-time",
			})
		}
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be sent together",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Accuracy != nil && *r.Accuracy < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy",
			Message: "accuracy must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LocationResponse struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

type PunchResponse struct {
	ID           string            `json:"id"`
	EmployeeID   string            `json:"employee_id"`
	Kind         string            `json:"kind"`
	Timestamp    string            `json:"timestamp"`
	WorkDate     string            `json:"work_date"`
	Location     *LocationResponse `json:"location,omitempty"`
	Source       string            `json:"source"`
	AdjustmentID *string           `json:"adjustment_id,omitempty"`
	CreatedAt    string            `json:"created_at"`
}

type ListPunchFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD, inclusive
}

func (f *ListPunchFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		} else if end.Sub(start).Hours()/24 > 92 {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "date range must not exceed 92 days",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListPunchResponse struct {
	EmployeeID string          `json:"employee_id"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Timezone   string          `json:"timezone"`
	Events     []PunchResponse `json:"events"`
}

// ========================================
// TODAY STATUS DTOs
// ========================================

type TodayStatusResponse struct {
	Date        string          `json:"date"`
	Timezone    string          `json:"timezone"`
	State       string          `json:"state"`
	NextAllowed *string         `json:"next_allowed,omitempty"`
	CanPunch    bool            `json:"can_punch"`
	Events      []PunchResponse `json:"events"`
	Message     string          `json:"message"`
}
