package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("employee has already checked in today")
	ErrNotCheckedIn      = errors.New("employee has not checked in today")
	ErrAlreadyCheckedOut = errors.New("employee has already checked out today")

	// Manual entry errors
	ErrDuplicateForDate = errors.New("attendance record already exists for this employee and date")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
