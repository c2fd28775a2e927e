package statistics

import (
	"context"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/leave"
)

type StatisticsService interface {
	// Dashboard runs the independent counts concurrently.
	Dashboard(ctx context.Context) (DashboardResponse, error)
	CompanyStats(ctx context.Context, companyID int64) (CompanyStatsResponse, error)

	ExpiringPassports(ctx context.Context) ([]EmployeeExpiryResponse, error)
	ExpiringIDs(ctx context.Context) ([]EmployeeExpiryResponse, error)
	ExpiringLicenses(ctx context.Context) ([]CompanyLicenseResponse, error)
	TodayPresent(ctx context.Context) ([]attendance.AttendanceResponse, error)
	TodayAbsent(ctx context.Context) ([]AbsentEmployeeResponse, error)
	PendingLeaves(ctx context.Context) ([]leave.LeaveResponse, error)
	ApprovedLeavesToday(ctx context.Context) ([]leave.LeaveResponse, error)

	// AttendanceReport renders the daily attendance sheet as a PDF.
	AttendanceReport(ctx context.Context, req AttendanceReportRequest) ([]byte, error)
}
