package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWorkHours(t *testing.T) {
	cases := []struct {
		input time.Duration
		want  string
	}{
		{0, "0:00:00"},
		{8*time.Hour + 5*time.Minute + 9*time.Second, "8:05:09"},
		{26*time.Hour + 30*time.Minute, "26:30:00"},
		{59*time.Second + 999*time.Millisecond, "0:00:59"},
	}
	for _, c := range cases {
		if got := FormatWorkHours(c.input); got != c.want {
			t.Errorf("FormatWorkHours(%v) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestSetManualTimes(t *testing.T) {
	in := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	out := in.Add(9*time.Hour + 15*time.Minute)

	var a Attendance
	a.SetManualTimes(&in, &out)
	assert.Equal(t, StatusPresent, a.Status)
	require.NotNil(t, a.WorkDuration)
	assert.Equal(t, 9*time.Hour+15*time.Minute, *a.WorkDuration)

	a.SetManualTimes(&in, nil)
	assert.Equal(t, StatusPresent, a.Status)
	assert.Nil(t, a.WorkDuration)

	a.SetManualTimes(nil, nil)
	assert.Equal(t, StatusAbsent, a.Status)
	assert.Nil(t, a.WorkDuration)
}

func strPtr(s string) *string { return &s }

func TestCreateAttendanceRequest_Parse(t *testing.T) {
	t.Run("valid with both times", func(t *testing.T) {
		req := CreateAttendanceRequest{
			EmployeeID: 7,
			EntryRequest: EntryRequest{
				Date:     "2024-01-10",
				CheckIn:  strPtr("2024-01-10T08:00:00+04:00"),
				CheckOut: strPtr("2024-01-10T17:00:00+04:00"),
			},
		}
		entry, err := req.Parse()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), entry.Date)
		require.NotNil(t, entry.CheckOut)
		assert.Equal(t, 9*time.Hour, entry.CheckOut.Sub(*entry.CheckIn))
	})

	t.Run("check out before check in", func(t *testing.T) {
		req := CreateAttendanceRequest{
			EmployeeID: 7,
			EntryRequest: EntryRequest{
				Date:     "2024-01-10",
				CheckIn:  strPtr("2024-01-10T17:00:00+04:00"),
				CheckOut: strPtr("2024-01-10T08:00:00+04:00"),
			},
		}
		err := req.Validate()
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "check_out")
	})

	t.Run("check out without check in", func(t *testing.T) {
		req := UpdateAttendanceRequest{EntryRequest{Date: "2024-01-10", CheckOut: strPtr("2024-01-10T17:00:00Z")}}
		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Equal(t, "check_out requires check_in", errs.ToMap()["check_out"])
	})

	t.Run("missing fields", func(t *testing.T) {
		var errs validator.ValidationErrors
		require.ErrorAs(t, CreateAttendanceRequest{}.Validate(), &errs)
		m := errs.ToMap()
		assert.Contains(t, m, "employee_id")
		assert.Contains(t, m, "date")
	})

	t.Run("bad timestamp", func(t *testing.T) {
		req := UpdateAttendanceRequest{EntryRequest{Date: "2024-01-10", CheckIn: strPtr("08:00")}}
		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "check_in")
	})
}

func TestListAttendanceRequest_Parse(t *testing.T) {
	filter, err := ListAttendanceRequest{StartDate: strPtr("2024-01-01"), EndDate: strPtr("2024-01-31")}.Parse()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *filter.EndDate)

	_, err = ListAttendanceRequest{StartDate: strPtr("2024-02-01"), EndDate: strPtr("2024-01-31")}.Parse()
	assert.Error(t, err)
}

func TestNewAttendanceResponse_WorkHours(t *testing.T) {
	in := time.Date(2024, 1, 10, 4, 0, 0, 0, time.UTC)
	out := in.Add(8*time.Hour + 30*time.Minute)
	d := out.Sub(in)

	resp := NewAttendanceResponse(Attendance{
		ID: 1, EmployeeID: 2, Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckIn: &in, CheckOut: &out, WorkDuration: &d, Status: StatusPresent,
	})

	assert.Equal(t, "2024-01-10", resp.Date)
	require.NotNil(t, resp.WorkHours)
	assert.Equal(t, "8:30:00", *resp.WorkHours)
	assert.Equal(t, float64(8*3600+30*60), *resp.WorkDurationSeconds)
	assert.Equal(t, 8, resp.CheckIn.Hour())
}
