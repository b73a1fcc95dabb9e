package timesheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/timesheet"
	"github.com/xuri/excelize/v2"
)

var dayColumns = []string{
	"Date", "Day", "Clock In", "Break Start", "Break End", "Clock Out",
	"Worked", "Break", "Balance", "Worked Hours", "Status", "Pending Adjustment",
}

const workedHoursColumn = 9

func dayRow(d timesheet.DayReportResponse) []string {
	return []string{
		d.Date,
		d.DayOfWeek,
		valueOrDash(d.ClockIn),
		valueOrDash(d.BreakStart),
		valueOrDash(d.BreakEnd),
		valueOrDash(d.ClockOut),
		d.Worked,
		timesheet.FormatMinutes(d.BreakMinutes),
		d.Balance,
		d.WorkedHours.StringFixed(2),
		d.Status,
		strconv.FormatBool(d.HasPendingAdjustment),
	}
}

func summaryRows(r timesheet.MonthlyReportResponse) [][]string {
	return [][]string{
		{"Employee", r.EmployeeName},
		{"Employee ID", r.EmployeeID},
		{"Period", r.PeriodStart + " - " + r.PeriodEnd},
		{"Timezone", r.Timezone},
		{"Schedule", fmt.Sprintf("%s-%s (%s, break %d min)", r.Schedule.StartTime, r.Schedule.EndTime, r.Schedule.Source, r.Schedule.BreakMinutes)},
		{"Total Worked", r.Summary.Worked},
		{"Total Balance", r.Summary.Balance},
		{"Counted Days", strconv.Itoa(r.Summary.CountedDays)},
		{"Absent Days", strconv.Itoa(r.Summary.AbsentDays)},
	}
}

func valueOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func renderCSV(r timesheet.MonthlyReportResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(dayColumns); err != nil {
		return nil, err
	}
	for _, d := range r.Days {
		if err := w.Write(dayRow(d)); err != nil {
			return nil, err
		}
	}

	// Blank separator line between days and summary.
	if err := w.Write([]string{}); err != nil {
		return nil, err
	}
	for _, row := range summaryRows(r) {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(r timesheet.MonthlyReportResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close workbook", "error", err)
		}
	}()

	sheet := fmt.Sprintf("%04d-%02d", r.PeriodYear, r.PeriodMonth)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	absentStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#999999"},
	})
	if err != nil {
		return nil, err
	}

	for col, title := range dayColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(dayColumns), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	row := 2
	for _, d := range r.Days {
		values := dayRow(d)
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			var value any = v
			if col == workedHoursColumn {
				value = d.WorkedHours.InexactFloat64()
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
		if d.Status == string(timesheet.DayStatusAbsent) {
			first, _ := excelize.CoordinatesToCellName(1, row)
			last, _ := excelize.CoordinatesToCellName(len(dayColumns), row)
			if err := f.SetCellStyle(sheet, first, last, absentStyle); err != nil {
				return nil, err
			}
		}
		row++
	}

	row++
	for _, summary := range summaryRows(r) {
		for col, v := range summary {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
		row++
	}

	if err := f.SetColWidth(sheet, "A", "A", 12); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", "L", 14); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
