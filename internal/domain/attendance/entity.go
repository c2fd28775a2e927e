package attendance

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLate    Status = "Late"
	StatusOnLeave Status = "OnLeave"
)

// Attendance is one employee's record for one calendar day.
// At most one row exists per (EmployeeID, Date).
type Attendance struct {
	ID           int64
	EmployeeID   int64
	Date         time.Time
	CheckIn      *time.Time
	CheckOut     *time.Time
	WorkDuration *time.Duration
	Status       Status
	Notes        *string
	CreatedAt    time.Time

	// Joined
	EmployeeName string
	CompanyName  string
}

// SetManualTimes replaces both timestamps of a hand-entered record and re-derives
// status and work duration from them.
func (a *Attendance) SetManualTimes(checkIn, checkOut *time.Time) {
	a.CheckIn = checkIn
	a.CheckOut = checkOut

	if checkIn != nil {
		a.Status = StatusPresent
	} else {
		a.Status = StatusAbsent
	}

	a.WorkDuration = nil
	if checkIn != nil && checkOut != nil {
		d := checkOut.Sub(*checkIn)
		a.WorkDuration = &d
	}
}

// FormatWorkHours renders d as H:MM:SS. Hours are not wrapped at 24.
func FormatWorkHours(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%s%d:%02d:%02d", sign, total/3600, (total%3600)/60, total%60)
}
