package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
)

type attendanceRepository struct {
	*Store
}

func (r *attendanceRepository) joined(a attendance.Attendance) attendance.Attendance {
	e := r.employees[a.EmployeeID]
	a.EmployeeName = e.Name
	a.CompanyName = r.companies[e.CompanyID].Name
	return a
}

func (r *attendanceRepository) takenLocked(employeeID int64, date time.Time, exceptID int64) bool {
	for id, a := range r.attendances {
		if id != exceptID && a.EmployeeID == employeeID && a.Date.Equal(date) {
			return true
		}
	}
	return false
}

func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[a.EmployeeID]; !ok {
		return attendance.Attendance{}, employee.ErrEmployeeNotFound
	}
	if r.takenLocked(a.EmployeeID, a.Date, 0) {
		return attendance.Attendance{}, attendance.ErrDuplicateForDate
	}
	a.ID = r.id()
	r.attendances[a.ID] = a
	return r.joined(a), nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id int64) (attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.joined(a), nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.attendances {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			found := r.joined(a)
			return &found, nil
		}
	}
	return nil, nil
}

func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.attendances[a.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	if r.takenLocked(existing.EmployeeID, a.Date, a.ID) {
		return attendance.ErrDuplicateForDate
	}
	a.EmployeeID = existing.EmployeeID
	a.CreatedAt = existing.CreatedAt
	r.attendances[a.ID] = a
	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.attendances[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.attendances, id)
	return nil
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]attendance.Attendance, 0)
	for _, a := range r.attendances {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.StartDate != nil && a.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && a.Date.After(*filter.EndDate) {
			continue
		}
		list = append(list, r.joined(a))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return checkInAfter(list[i].CheckIn, list[j].CheckIn)
	})
	return list, nil
}

// checkInAfter orders check-ins descending with missing values last, like DESC NULLS LAST.
func checkInAfter(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.After(*b)
	}
}
