package attendance

import (
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
)

// ========================================
// MANUAL ENTRY
// ========================================

// EntryRequest is the body of a manual create or update. Timestamps are RFC 3339.
type EntryRequest struct {
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// Entry is a parsed, validated EntryRequest.
type Entry struct {
	Date     time.Time
	CheckIn  *time.Time
	CheckOut *time.Time
	Notes    *string
}

// Parse validates r and returns the parsed entry.
func (r EntryRequest) Parse() (Entry, error) {
	errs := validator.Struct(r)
	var entry Entry

	if date, ok := validator.IsValidDate(r.Date); ok {
		entry.Date = date
	}

	parseTime := func(field string, value *string) *time.Time {
		if value == nil || validator.IsEmpty(*value) {
			return nil
		}
		t, ok := validator.IsValidDateTime(*value)
		if !ok {
			errs.Add(field, field+" must be an RFC 3339 timestamp")
			return nil
		}
		t = t.In(clock.Location())
		return &t
	}
	entry.CheckIn = parseTime("check_in", r.CheckIn)
	entry.CheckOut = parseTime("check_out", r.CheckOut)

	if entry.CheckOut != nil {
		switch {
		case entry.CheckIn == nil:
			errs.Add("check_out", "check_out requires check_in")
		case entry.CheckOut.Before(*entry.CheckIn):
			errs.Add("check_out", "check_out must not be earlier than check_in")
		}
	}

	if r.Notes != nil && !validator.IsEmpty(*r.Notes) {
		entry.Notes = r.Notes
	}

	if len(errs) > 0 {
		return Entry{}, errs
	}
	return entry, nil
}

type CreateAttendanceRequest struct {
	EmployeeID int64 `json:"employee_id"`
	EntryRequest
}

func (r CreateAttendanceRequest) Validate() error {
	_, err := r.Parse()
	return err
}

// Parse validates the whole create request, including employee_id.
func (r CreateAttendanceRequest) Parse() (Entry, error) {
	var errs validator.ValidationErrors
	if r.EmployeeID <= 0 {
		errs.Add("employee_id", "employee_id is required")
	}

	entry, err := r.EntryRequest.Parse()
	if entryErrs, ok := err.(validator.ValidationErrors); ok {
		errs = append(errs, entryErrs...)
	}

	if len(errs) > 0 {
		return Entry{}, errs
	}
	return entry, nil
}

type UpdateAttendanceRequest struct {
	EntryRequest
}

func (r UpdateAttendanceRequest) Validate() error {
	_, err := r.Parse()
	return err
}

// ========================================
// LIST FILTER
// ========================================

type ListAttendanceRequest struct {
	EmployeeID *int64  `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
}

type Filter struct {
	EmployeeID *int64
	StartDate  *time.Time
	EndDate    *time.Time
}

func (r ListAttendanceRequest) Parse() (Filter, error) {
	var errs validator.ValidationErrors
	filter := Filter{EmployeeID: r.EmployeeID}

	parseDate := func(field string, value *string) *time.Time {
		if value == nil || validator.IsEmpty(*value) {
			return nil
		}
		date, ok := validator.IsValidDate(*value)
		if !ok {
			errs.Add(field, field+" must be a valid date (YYYY-MM-DD)")
			return nil
		}
		return &date
	}
	filter.StartDate = parseDate("start_date", r.StartDate)
	filter.EndDate = parseDate("end_date", r.EndDate)

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		errs.Add("end_date", "end_date must not be earlier than start_date")
	}

	if len(errs) > 0 {
		return Filter{}, errs
	}
	return filter, nil
}

// ========================================
// RESPONSE
// ========================================

type AttendanceResponse struct {
	ID                  int64      `json:"id"`
	EmployeeID          int64      `json:"employee_id"`
	EmployeeName        string     `json:"employee_name,omitempty"`
	CompanyName         string     `json:"company_name,omitempty"`
	Date                string     `json:"date"`
	CheckIn             *time.Time `json:"check_in"`
	CheckOut            *time.Time `json:"check_out"`
	WorkDurationSeconds *float64   `json:"work_duration_seconds"`
	WorkHours           *string    `json:"work_hours"`
	Status              Status     `json:"status"`
	Notes               *string    `json:"notes"`
	CreatedAt           time.Time  `json:"created_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		CompanyName:  a.CompanyName,
		Date:         a.Date.Format(validator.DateLayout),
		CheckIn:      inLocal(a.CheckIn),
		CheckOut:     inLocal(a.CheckOut),
		Status:       a.Status,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt.In(clock.Location()),
	}
	if a.WorkDuration != nil {
		seconds := a.WorkDuration.Seconds()
		hours := FormatWorkHours(*a.WorkDuration)
		resp.WorkDurationSeconds = &seconds
		resp.WorkHours = &hours
	}
	return resp
}

func NewAttendanceResponses(list []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewAttendanceResponse(a))
	}
	return out
}

func inLocal(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	local := t.In(clock.Location())
	return &local
}
