package timesheet

import "context"

type TimesheetService interface {
	GetMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)
	ExportMonthlyReport(ctx context.Context, req ExportMonthlyReportRequest) (ExportFile, error)
}
