package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/statistics"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/pdf"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
)

var sheetHeaders = []string{"No", "Employee", "Company", "Check In", "Check Out", "Work Hours", "Status"}
var sheetWidths = []float64{12, 62, 62, 35, 35, 32, 39}

// AttendanceReport implements statistics.StatisticsService.
func (s *StatisticsServiceImpl) AttendanceReport(ctx context.Context, req statistics.AttendanceReportRequest) ([]byte, error) {
	date := s.clock.Today()
	if req.Date != nil && !validator.IsEmpty(*req.Date) {
		parsed, ok := validator.IsValidDate(*req.Date)
		if !ok {
			return nil, validator.ValidationErrors{{Field: "date", Message: "date must be a valid date (YYYY-MM-DD)"}}
		}
		date = parsed
	}

	rows, err := s.statisticsRepo.AttendanceSheet(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance sheet: %w", err)
	}

	table := pdf.Table{
		Title:    "Daily Attendance Report",
		Subtitle: fmt.Sprintf("%s  |  %d employees  |  generated %s", date.Format("Monday, 02 January 2006"), len(rows), s.clock.Now().Format("2006-01-02 15:04 MST")),
		Headers:  sheetHeaders,
		Widths:   sheetWidths,
		Rows:     make([][]string, 0, len(rows)),
	}
	for i, row := range rows {
		table.Rows = append(table.Rows, sheetLine(i+1, row))
	}

	return pdf.Render(table)
}

func sheetLine(no int, row statistics.SheetRow) []string {
	status := string(attendance.StatusAbsent)
	if row.Status != nil {
		status = string(*row.Status)
	}
	workHours := "-"
	if row.WorkDuration != nil {
		workHours = attendance.FormatWorkHours(*row.WorkDuration)
	}
	return []string{
		fmt.Sprintf("%d", no),
		row.EmployeeName,
		row.CompanyName,
		clockTime(row.CheckIn),
		clockTime(row.CheckOut),
		workHours,
		status,
	}
}

func clockTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.In(clock.Location()).Format("15:04")
}
