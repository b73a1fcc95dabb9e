package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetMonthly(w http.ResponseWriter, r *http.Request)
	ExportMonthly(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewReportHandler(timesheetService timesheet.TimesheetService) ReportHandler {
	return &reportHandlerImpl{
		timesheetService: timesheetService,
	}
}

func parseMonthlyRequest(r *http.Request) (timesheet.MonthlyReportRequest, bool) {
	query := r.URL.Query()

	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		return timesheet.MonthlyReportRequest{}, false
	}

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		return timesheet.MonthlyReportRequest{}, false
	}

	req := timesheet.MonthlyReportRequest{Month: month, Year: year}
	if employeeID := query.Get("employee_id"); employeeID != "" {
		req.EmployeeID = &employeeID
	}
	return req, true
}

// GetMonthly handles GET /reports/monthly?month=&year=&employee_id=
func (h *reportHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	req, ok := parseMonthlyRequest(r)
	if !ok {
		response.BadRequest(w, "month and year must be numbers", nil)
		return
	}

	result, err := h.timesheetService.GetMonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportMonthly handles GET /reports/monthly/export?month=&year=&format=csv|xlsx
func (h *reportHandlerImpl) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	req, ok := parseMonthlyRequest(r)
	if !ok {
		response.BadRequest(w, "month and year must be numbers", nil)
		return
	}

	file, err := h.timesheetService.ExportMonthlyReport(r.Context(), timesheet.ExportMonthlyReportRequest{
		MonthlyReportRequest: req,
		Format:               r.URL.Query().Get("format"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}
