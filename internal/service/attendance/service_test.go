package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// movableClock lets a test advance time between calls.
type movableClock struct {
	now time.Time
}

func (c *movableClock) Now() time.Time   { return c.now.In(clock.Location()) }
func (c *movableClock) Today() time.Time { return clock.DateOf(c.now) }

type fixture struct {
	store      *memory.Store
	clock      *movableClock
	service    attendance.AttendanceService
	employeeID int64
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	clk := &movableClock{now: time.Date(2024, 1, 10, 4, 0, 0, 0, time.UTC)} // 08:00 GST

	c, err := store.Companies().Create(ctx, company.Company{Name: "Acme Trading LLC", LicenseExpiryDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	e, err := store.Employees().Create(ctx, employee.Employee{CompanyID: c.ID, Name: "Sara Khan"})
	require.NoError(t, err)

	return fixture{
		store:      store,
		clock:      clk,
		service:    NewAttendanceService(store, clk, store.Attendance(), store.Employees()),
		employeeID: e.ID,
	}
}

func strPtr(s string) *string { return &s }

func TestCheckInCheckOut_RecordsDuration(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	in, err := f.service.CheckIn(ctx, f.employeeID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", in.Date)
	assert.Equal(t, attendance.StatusPresent, in.Status)
	assert.Equal(t, "Sara Khan", in.EmployeeName)
	assert.Equal(t, "Acme Trading LLC", in.CompanyName)
	assert.Nil(t, in.CheckOut)
	assert.Nil(t, in.WorkHours)

	f.clock.now = f.clock.now.Add(8*time.Hour + 42*time.Minute + 7*time.Second)
	out, err := f.service.CheckOut(ctx, f.employeeID)
	require.NoError(t, err)
	require.NotNil(t, out.CheckOut)
	require.NotNil(t, out.WorkHours)
	assert.Equal(t, out.CheckOut.Sub(*out.CheckIn).Seconds(), *out.WorkDurationSeconds)
	assert.Equal(t, "8:42:07", *out.WorkHours)

	// Stored duration is unchanged on a later read.
	f.clock.now = f.clock.now.Add(5 * time.Hour)
	reread, err := f.service.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, *out.WorkDurationSeconds, *reread.WorkDurationSeconds)
}

func TestCheckIn_Twice(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.service.CheckIn(ctx, f.employeeID)
	require.NoError(t, err)

	_, err = f.service.CheckIn(ctx, f.employeeID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_CompletesBackfilledAbsentRow(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.service.Create(ctx, attendance.CreateAttendanceRequest{
		EmployeeID:   f.employeeID,
		EntryRequest: attendance.EntryRequest{Date: "2024-01-10"},
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, created.Status)

	in, err := f.service.CheckIn(ctx, f.employeeID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, in.ID)
	assert.Equal(t, attendance.StatusPresent, in.Status)
	require.NotNil(t, in.CheckIn)
}

func TestCheckOut_Errors(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.service.CheckOut(ctx, f.employeeID)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	_, err = f.service.CheckIn(ctx, f.employeeID)
	require.NoError(t, err)
	_, err = f.service.CheckOut(ctx, f.employeeID)
	require.NoError(t, err)

	_, err = f.service.CheckOut(ctx, f.employeeID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	// The next local day starts fresh.
	f.clock.now = f.clock.now.Add(24 * time.Hour)
	_, err = f.service.CheckOut(ctx, f.employeeID)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckIn_UnknownEmployee(t *testing.T) {
	f := setup(t)

	_, err := f.service.CheckIn(context.Background(), 9999)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCheckIn_UsesGulfCalendarDay(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	// 21:30 UTC on the 10th is already the 11th in GST.
	f.clock.now = time.Date(2024, 1, 10, 21, 30, 0, 0, time.UTC)
	in, err := f.service.CheckIn(ctx, f.employeeID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-11", in.Date)
}

func TestCreate_DuplicateForDate(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	req := attendance.CreateAttendanceRequest{
		EmployeeID: f.employeeID,
		EntryRequest: attendance.EntryRequest{
			Date:     "2024-01-05",
			CheckIn:  strPtr("2024-01-05T08:00:00+04:00"),
			CheckOut: strPtr("2024-01-05T16:30:00+04:00"),
		},
	}
	first, err := f.service.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "8:30:00", *first.WorkHours)

	_, err = f.service.Create(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrDuplicateForDate)
}

func TestCreate_ValidationAndMissingEmployee(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.service.Create(ctx, attendance.CreateAttendanceRequest{
		EmployeeID: f.employeeID,
		EntryRequest: attendance.EntryRequest{
			Date:     "2024-01-05",
			CheckIn:  strPtr("2024-01-05T17:00:00+04:00"),
			CheckOut: strPtr("2024-01-05T08:00:00+04:00"),
		},
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	_, err = f.service.Create(ctx, attendance.CreateAttendanceRequest{
		EmployeeID:   424242,
		EntryRequest: attendance.EntryRequest{Date: "2024-01-05"},
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdate_RederivesAndRejectsTakenDate(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	a, err := f.service.Create(ctx, attendance.CreateAttendanceRequest{
		EmployeeID:   f.employeeID,
		EntryRequest: attendance.EntryRequest{Date: "2024-01-05", CheckIn: strPtr("2024-01-05T08:00:00+04:00")},
	})
	require.NoError(t, err)
	_, err = f.service.Create(ctx, attendance.CreateAttendanceRequest{
		EmployeeID:   f.employeeID,
		EntryRequest: attendance.EntryRequest{Date: "2024-01-06"},
	})
	require.NoError(t, err)

	updated, err := f.service.Update(ctx, a.ID, attendance.UpdateAttendanceRequest{EntryRequest: attendance.EntryRequest{
		Date:     "2024-01-05",
		CheckIn:  strPtr("2024-01-05T09:00:00+04:00"),
		CheckOut: strPtr("2024-01-05T18:15:00+04:00"),
		Notes:    strPtr("forgot badge"),
	}})
	require.NoError(t, err)
	assert.Equal(t, "9:15:00", *updated.WorkHours)
	assert.Equal(t, "forgot badge", *updated.Notes)

	cleared, err := f.service.Update(ctx, a.ID, attendance.UpdateAttendanceRequest{EntryRequest: attendance.EntryRequest{Date: "2024-01-05"}})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, cleared.Status)
	assert.Nil(t, cleared.WorkHours)

	_, err = f.service.Update(ctx, a.ID, attendance.UpdateAttendanceRequest{EntryRequest: attendance.EntryRequest{Date: "2024-01-06"}})
	assert.ErrorIs(t, err, attendance.ErrDuplicateForDate)

	_, err = f.service.Update(ctx, 777, attendance.UpdateAttendanceRequest{EntryRequest: attendance.EntryRequest{Date: "2024-01-07"}})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	for _, date := range []string{"2024-01-03", "2024-01-05", "2024-01-04"} {
		_, err := f.service.Create(ctx, attendance.CreateAttendanceRequest{
			EmployeeID:   f.employeeID,
			EntryRequest: attendance.EntryRequest{Date: date},
		})
		require.NoError(t, err)
	}

	list, err := f.service.ListByEmployee(ctx, f.employeeID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-01-05", list[0].Date)
	assert.Equal(t, "2024-01-03", list[2].Date)

	filter, err := attendance.ListAttendanceRequest{StartDate: strPtr("2024-01-04"), EndDate: strPtr("2024-01-04")}.Parse()
	require.NoError(t, err)
	ranged, err := f.service.List(ctx, filter)
	require.NoError(t, err)
	require.Len(t, ranged, 1)

	require.NoError(t, f.service.Delete(ctx, ranged[0].ID))
	assert.ErrorIs(t, f.service.Delete(ctx, ranged[0].ID), attendance.ErrAttendanceNotFound)
	_, err = f.service.GetByID(ctx, ranged[0].ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	_, err = f.service.ListByEmployee(ctx, 31337)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
