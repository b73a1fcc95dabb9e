package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrMissingClaim):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Punch domain errors
	case errors.Is(err, punch.ErrInvalidSequence):
		Conflict(w, err.Error())
	case errors.Is(err, punch.ErrPunchNotFound):
		NotFound(w, "Punch event not found")
	case errors.Is(err, punch.ErrTimestampNotToday):
		UnprocessableEntity(w, "TIMESTAMP_NOT_TODAY", "Punch timestamp must fall on the current day")
	case errors.Is(err, punch.ErrFutureTimestamp):
		UnprocessableEntity(w, "FUTURE_TIMESTAMP", "Punch timestamp is in the future")

	// Schedule errors are operator problems, not client ones
	case errors.Is(err, schedule.ErrConfiguration):
		slog.Error("schedule configuration error", "error", err)
		ConfigurationError(w, "Work schedule is misconfigured, contact your administrator")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidTimezone):
		slog.Error("employee timezone error", "error", err)
		ConfigurationError(w, "Employee timezone is misconfigured, contact your administrator")

	// Adjustment domain errors
	case errors.Is(err, adjustment.ErrAdjustmentNotFound):
		NotFound(w, "Adjustment request not found")
	case errors.Is(err, adjustment.ErrAdjustmentAlreadyProcessed):
		Conflict(w, "Adjustment request already processed")
	case errors.Is(err, adjustment.ErrUnauthorized):
		Forbidden(w, err.Error())
	case errors.Is(err, adjustment.ErrFutureDate):
		UnprocessableEntity(w, "FUTURE_DATE", "Adjustment date cannot be in the future")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
