package statistics

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/leave"
)

// EmployeeSummary combines employee counts in a single query
type EmployeeSummary struct {
	Total             int64
	ExpiringPassports int64
	ExpiringIDs       int64
}

// CompanySummary combines company counts in a single query
type CompanySummary struct {
	Total            int64
	ExpiringLicenses int64
}

type LeaveSummary struct {
	Pending        int64
	ApprovedActive int64 // approved and covering the given day
}

type EmployeeExpiry struct {
	EmployeeID     int64
	EmployeeName   string
	CompanyID      int64
	CompanyName    string
	PassportNumber string
	ExpiryDate     time.Time
}

type CompanyLicense struct {
	CompanyID         int64
	CompanyName       string
	LicenseExpiryDate time.Time
	EmployeeCount     int64
}

type AbsentEmployee struct {
	EmployeeID   int64
	EmployeeName string
	CompanyID    int64
	CompanyName  string
	JobTitle     string
}

// SheetRow is one employee's line on the daily attendance report.
// Attendance fields are nil when the employee has no row for the day.
type SheetRow struct {
	EmployeeName string
	CompanyName  string
	CheckIn      *time.Time
	CheckOut     *time.Time
	WorkDuration *time.Duration
	Status       *attendance.Status
}

// Windowed queries take [from, until] inclusive.
type StatisticsRepository interface {
	// EmployeeSummary counts all employees, or only those of companyID when set.
	EmployeeSummary(ctx context.Context, from, until time.Time, companyID *int64) (EmployeeSummary, error)
	CompanySummary(ctx context.Context, from, until time.Time) (CompanySummary, error)
	// CheckedInCount counts attendance rows for date with a check-in.
	CheckedInCount(ctx context.Context, date time.Time) (int64, error)
	LeaveSummary(ctx context.Context, date time.Time) (LeaveSummary, error)
	EmployeeCountsByCompany(ctx context.Context) ([]CompanyEmployeeCount, error)

	ExpiringPassports(ctx context.Context, from, until time.Time) ([]EmployeeExpiry, error)
	ExpiringIDs(ctx context.Context, from, until time.Time) ([]EmployeeExpiry, error)
	ExpiringLicenses(ctx context.Context, from, until time.Time) ([]CompanyLicense, error)
	PresentAttendance(ctx context.Context, date time.Time) ([]attendance.Attendance, error)
	AbsentEmployees(ctx context.Context, date time.Time) ([]AbsentEmployee, error)
	PendingLeaves(ctx context.Context) ([]leave.Leave, error)
	ApprovedLeavesOn(ctx context.Context, date time.Time) ([]leave.Leave, error)
	AttendanceSheet(ctx context.Context, date time.Time) ([]SheetRow, error)
}
