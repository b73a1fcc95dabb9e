package timesheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// MONTHLY REPORT
// ========================================

type MonthlyReportRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2000 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2000 and %d", currentYear+1),
		})
	}

	if r.EmployeeID != nil && validator.IsEmpty(*r.EmployeeID) {
		r.EmployeeID = nil
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the first and last work date of the requested month.
func (r MonthlyReportRequest) Period() (time.Time, time.Time) {
	first := time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

var ExportFormatValues = []string{
	string(ExportFormatCSV),
	string(ExportFormatXLSX),
}

type ExportMonthlyReportRequest struct {
	MonthlyReportRequest
	Format string `json:"format"`
}

func (r *ExportMonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := r.MonthlyReportRequest.Validate(); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, verrs...)
		}
	}

	r.Format = strings.ToLower(strings.TrimSpace(r.Format))
	if r.Format == "" {
		r.Format = string(ExportFormatCSV)
	}
	if !validator.IsInSlice(r.Format, ExportFormatValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: " + strings.Join(ExportFormatValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyReportResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Timezone     string `json:"timezone"`
	PeriodMonth  int    `json:"period_month"`
	PeriodYear   int    `json:"period_year"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`
	GeneratedAt  string `json:"generated_at"`

	Schedule ScheduleSummary     `json:"schedule"`
	Summary  MonthlySummary      `json:"summary"`
	Days     []DayReportResponse `json:"days"`
}

type ScheduleSummary struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
	NetMinutes   int    `json:"net_minutes"`
	Source       string `json:"source"`
}

type MonthlySummary struct {
	WorkedMinutes  int             `json:"worked_minutes"`
	BreakMinutes   int             `json:"break_minutes"`
	BalanceMinutes int             `json:"balance_minutes"`
	Worked         string          `json:"worked"`  // HH:MM
	Balance        string          `json:"balance"` // signed HH:MM
	WorkedHours    decimal.Decimal `json:"worked_hours"`
	BalanceHours   decimal.Decimal `json:"balance_hours"`

	CountedDays        int `json:"counted_days"`
	CompleteDays       int `json:"complete_days"`
	IncompleteDays     int `json:"incomplete_days"`
	AbsentDays         int `json:"absent_days"`
	InProgressDays     int `json:"in_progress_days"`
	PendingAdjustments int `json:"pending_adjustment_days"`
}

type DayReportResponse struct {
	Date       string  `json:"date"`
	DayOfWeek  string  `json:"day_of_week"`
	ClockIn    *string `json:"clock_in"`
	BreakStart *string `json:"break_start"`
	BreakEnd   *string `json:"break_end"`
	ClockOut   *string `json:"clock_out"`

	WorkedMinutes  int             `json:"worked_minutes"`
	BreakMinutes   int             `json:"break_minutes"`
	BalanceMinutes int             `json:"balance_minutes"`
	Worked         string          `json:"worked"`
	Balance        string          `json:"balance"`
	WorkedHours    decimal.Decimal `json:"worked_hours"`

	Status string `json:"status"`
	// HasPendingAdjustment flags days whose numbers may still change. The
	// numbers themselves only reflect approved corrections.
	HasPendingAdjustment bool `json:"has_pending_adjustment"`
}

// ExportFile is a rendered report ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Hours converts minutes to hours rounded to two decimals.
func Hours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
}
