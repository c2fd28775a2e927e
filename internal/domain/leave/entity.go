package leave

import "time"

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Known leave types. The column is free text, so other values are accepted.
const (
	TypeAnnual    = "Annual"
	TypeSick      = "Sick"
	TypeEmergency = "Emergency"
	TypeUnpaid    = "Unpaid"
)

// Leave is an inclusive date range of absence requested by one employee.
// Pending is the only non-terminal status.
type Leave struct {
	ID              int64
	EmployeeID      int64
	StartDate       time.Time
	EndDate         time.Time
	DayCount        int
	LeaveType       string
	Status          Status
	Reason          *string
	RejectionReason *string
	CreatedAt       time.Time
	ReviewedAt      *time.Time

	// Joined
	EmployeeName string
}

// DayCount returns the number of calendar days in [start, end], both dates included.
func DayCount(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// Overlaps reports whether the closed date ranges [aStart, aEnd] and [bStart, bEnd] share a day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// IsActiveOn reports whether day falls within the leave's range.
func (l Leave) IsActiveOn(day time.Time) bool {
	return !day.Before(l.StartDate) && !day.After(l.EndDate)
}

func (l Leave) IsPending() bool {
	return l.Status == StatusPending
}
