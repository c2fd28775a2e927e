package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a record. Returns ErrDuplicateForDate when the (employee, date) pair is taken.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id int64) (Attendance, error)

	// GetByEmployeeAndDate returns nil, nil when the employee has no record for date.
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error)

	// Update writes every mutable column. Returns ErrDuplicateForDate when moved onto a taken date.
	Update(ctx context.Context, attendance Attendance) error

	Delete(ctx context.Context, id int64) error

	// List returns records ordered by date then check-in, newest first.
	List(ctx context.Context, filter Filter) ([]Attendance, error)
}
