package statistics

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/statistics"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-15 10:00 GST
var now = time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	service   statistics.StatisticsService
	companyA  int64
	companyB  int64
	employees []int64
}

// setup creates two companies with ten employees, six of whom checked in today.
func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	today := clock.DateOf(now)

	a, err := store.Companies().Create(ctx, company.Company{Name: "Alpha Trading", LicenseExpiryDate: today.AddDate(0, 0, 30)})
	require.NoError(t, err)
	b, err := store.Companies().Create(ctx, company.Company{Name: "Beta Services", LicenseExpiryDate: today.AddDate(0, 0, 31)})
	require.NoError(t, err)
	_, err = store.Companies().Create(ctx, company.Company{Name: "Gamma Empty", LicenseExpiryDate: today.AddDate(0, 0, -1)})
	require.NoError(t, err)

	f := fixture{companyA: a.ID, companyB: b.ID}
	for i := 0; i < 10; i++ {
		companyID := a.ID
		if i >= 7 {
			companyID = b.ID
		}
		e := employee.Employee{
			CompanyID:          companyID,
			Name:               fmt.Sprintf("Employee %02d", i),
			PassportExpiryDate: today.AddDate(1, 0, 0),
			IDExpiryDate:       today.AddDate(1, 0, 0),
		}
		switch i {
		case 0:
			e.PassportExpiryDate = today // window start is inclusive
		case 1:
			e.PassportExpiryDate = today.AddDate(0, 0, 30) // window end is inclusive
		case 2:
			e.PassportExpiryDate = today.AddDate(0, 0, -1) // already expired
		case 8:
			e.IDExpiryDate = today.AddDate(0, 0, 5)
		}
		created, err := store.Employees().Create(ctx, e)
		require.NoError(t, err)
		f.employees = append(f.employees, created.ID)
	}

	for i := 0; i < 6; i++ {
		in := now.Add(-time.Duration(i) * time.Minute)
		_, err := store.Attendance().Create(ctx, attendance.Attendance{
			EmployeeID: f.employees[i], Date: today, CheckIn: &in, Status: attendance.StatusPresent,
		})
		require.NoError(t, err)
	}
	// A backfilled absent row does not count as present.
	_, err = store.Attendance().Create(ctx, attendance.Attendance{EmployeeID: f.employees[6], Date: today, Status: attendance.StatusAbsent})
	require.NoError(t, err)

	leaves := []leave.Leave{
		{EmployeeID: f.employees[7], StartDate: today.AddDate(0, 0, -2), EndDate: today, Status: leave.StatusApproved},
		{EmployeeID: f.employees[8], StartDate: today.AddDate(0, 0, 1), EndDate: today.AddDate(0, 0, 3), Status: leave.StatusApproved},
		{EmployeeID: f.employees[9], StartDate: today, EndDate: today, Status: leave.StatusPending},
		{EmployeeID: f.employees[9], StartDate: today.AddDate(0, 0, 5), EndDate: today.AddDate(0, 0, 6), Status: leave.StatusRejected},
	}
	for _, l := range leaves {
		_, err := store.Leaves().Create(ctx, l)
		require.NoError(t, err)
	}

	f.service = NewStatisticsService(clock.Fixed(now), 0, store.Statistics(), store.Companies())
	return f
}

func TestDashboard(t *testing.T) {
	f := setup(t)

	d, err := f.service.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15", d.Date)
	assert.Equal(t, DefaultExpiryWindowDays, d.ExpiryWindowDays)
	assert.EqualValues(t, 3, d.TotalCompanies)
	assert.EqualValues(t, 10, d.TotalEmployees)
	assert.EqualValues(t, 6, d.TodayPresent)
	assert.EqualValues(t, 4, d.TodayAbsent)
	assert.EqualValues(t, 2, d.ExpiringPassports)
	assert.EqualValues(t, 1, d.ExpiringIDs)
	assert.EqualValues(t, 1, d.ExpiringLicenses)
	assert.EqualValues(t, 1, d.PendingLeaves)
	assert.EqualValues(t, 1, d.ApprovedLeavesToday)

	require.Len(t, d.EmployeesPerCompany, 3)
	assert.Equal(t, statistics.CompanyEmployeeCount{CompanyID: f.companyA, CompanyName: "Alpha Trading", EmployeeCount: 7}, d.EmployeesPerCompany[0])
	assert.EqualValues(t, 3, d.EmployeesPerCompany[1].EmployeeCount)
	assert.EqualValues(t, 0, d.EmployeesPerCompany[2].EmployeeCount)
}

func TestCompanyStats(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	a, err := f.service.CompanyStats(ctx, f.companyA)
	require.NoError(t, err)
	assert.EqualValues(t, 7, a.TotalEmployees)
	assert.EqualValues(t, 2, a.ExpiringPassports)
	assert.EqualValues(t, 0, a.ExpiringIDs)
	assert.Equal(t, "2024-04-14", a.LicenseExpiryDate)
	assert.True(t, a.IsLicenseExpiringSoon)

	b, err := f.service.CompanyStats(ctx, f.companyB)
	require.NoError(t, err)
	assert.EqualValues(t, 1, b.ExpiringIDs)
	assert.False(t, b.IsLicenseExpiringSoon)

	_, err = f.service.CompanyStats(ctx, 424242)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestDetailLists(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	passports, err := f.service.ExpiringPassports(ctx)
	require.NoError(t, err)
	require.Len(t, passports, 2)
	assert.Equal(t, "2024-03-15", passports[0].ExpiryDate)
	assert.Equal(t, "2024-04-14", passports[1].ExpiryDate)

	ids, err := f.service.ExpiringIDs(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, "Beta Services", ids[0].CompanyName)

	licenses, err := f.service.ExpiringLicenses(ctx)
	require.NoError(t, err)
	require.Len(t, licenses, 1)
	assert.EqualValues(t, 7, licenses[0].EmployeeCount)

	present, err := f.service.TodayPresent(ctx)
	require.NoError(t, err)
	require.Len(t, present, 6)
	assert.Equal(t, "Employee 05", present[0].EmployeeName, "earliest check-in first")

	absent, err := f.service.TodayAbsent(ctx)
	require.NoError(t, err)
	require.Len(t, absent, 4)
	assert.Equal(t, "Employee 06", absent[0].EmployeeName)

	pending, err := f.service.PendingLeaves(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := f.service.ApprovedLeavesToday(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "Employee 07", approved[0].EmployeeName)
}

func TestAttendanceReport(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	doc, err := f.service.AttendanceReport(ctx, statistics.AttendanceReportRequest{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))

	bad := "15-03-2024"
	_, err = f.service.AttendanceReport(ctx, statistics.AttendanceReportRequest{Date: &bad})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
}

func TestSheetLine(t *testing.T) {
	in := time.Date(2024, 3, 15, 4, 5, 0, 0, time.UTC)
	out := in.Add(9*time.Hour + 30*time.Minute)
	d := out.Sub(in)
	status := attendance.StatusPresent

	line := sheetLine(3, statistics.SheetRow{EmployeeName: "A", CompanyName: "B", CheckIn: &in, CheckOut: &out, WorkDuration: &d, Status: &status})
	assert.Equal(t, []string{"3", "A", "B", "08:05", "17:35", "9:30:00", "Present"}, line)

	empty := sheetLine(4, statistics.SheetRow{EmployeeName: "C", CompanyName: "B"})
	assert.Equal(t, []string{"4", "C", "B", "-", "-", "-", "Absent"}, empty)
}
