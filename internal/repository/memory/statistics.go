package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/statistics"
)

type statisticsRepository struct {
	*Store
}

func (s *Store) Statistics() statistics.StatisticsRepository {
	return &statisticsRepository{s}
}

func within(d, from, until time.Time) bool {
	return !d.Before(from) && !d.After(until)
}

func (r *statisticsRepository) EmployeeSummary(ctx context.Context, from, until time.Time, companyID *int64) (statistics.EmployeeSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum statistics.EmployeeSummary
	for _, e := range r.employees {
		if companyID != nil && e.CompanyID != *companyID {
			continue
		}
		sum.Total++
		if within(e.PassportExpiryDate, from, until) {
			sum.ExpiringPassports++
		}
		if within(e.IDExpiryDate, from, until) {
			sum.ExpiringIDs++
		}
	}
	return sum, nil
}

func (r *statisticsRepository) CompanySummary(ctx context.Context, from, until time.Time) (statistics.CompanySummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum statistics.CompanySummary
	for _, c := range r.companies {
		sum.Total++
		if within(c.LicenseExpiryDate, from, until) {
			sum.ExpiringLicenses++
		}
	}
	return sum, nil
}

func (r *statisticsRepository) checkedInLocked(date time.Time) map[int64]attendance.Attendance {
	present := make(map[int64]attendance.Attendance)
	for _, a := range r.attendances {
		if a.Date.Equal(date) && a.CheckIn != nil {
			present[a.EmployeeID] = a
		}
	}
	return present
}

func (r *statisticsRepository) CheckedInCount(ctx context.Context, date time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.checkedInLocked(date))), nil
}

func (r *statisticsRepository) LeaveSummary(ctx context.Context, date time.Time) (statistics.LeaveSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum statistics.LeaveSummary
	for _, l := range r.leaves {
		switch {
		case l.Status == leave.StatusPending:
			sum.Pending++
		case l.Status == leave.StatusApproved && l.IsActiveOn(date):
			sum.ApprovedActive++
		}
	}
	return sum, nil
}

func (r *statisticsRepository) EmployeeCountsByCompany(ctx context.Context) ([]statistics.CompanyEmployeeCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make([]statistics.CompanyEmployeeCount, 0, len(r.companies))
	for _, c := range r.companies {
		count := statistics.CompanyEmployeeCount{CompanyID: c.ID, CompanyName: c.Name}
		for _, e := range r.employees {
			if e.CompanyID == c.ID {
				count.EmployeeCount++
			}
		}
		counts = append(counts, count)
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].CompanyName < counts[j].CompanyName })
	return counts, nil
}

func (r *statisticsRepository) expiring(from, until time.Time, pick func(e employee.Employee) time.Time) []statistics.EmployeeExpiry {
	list := make([]statistics.EmployeeExpiry, 0)
	for _, e := range r.employees {
		d := pick(e)
		if !within(d, from, until) {
			continue
		}
		list = append(list, statistics.EmployeeExpiry{
			EmployeeID:     e.ID,
			EmployeeName:   e.Name,
			CompanyID:      e.CompanyID,
			CompanyName:    r.companies[e.CompanyID].Name,
			PassportNumber: e.PassportNumber,
			ExpiryDate:     d,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ExpiryDate.Before(list[j].ExpiryDate) })
	return list
}

func (r *statisticsRepository) ExpiringPassports(ctx context.Context, from, until time.Time) ([]statistics.EmployeeExpiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.expiring(from, until, func(e employee.Employee) time.Time { return e.PassportExpiryDate }), nil
}

func (r *statisticsRepository) ExpiringIDs(ctx context.Context, from, until time.Time) ([]statistics.EmployeeExpiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.expiring(from, until, func(e employee.Employee) time.Time { return e.IDExpiryDate }), nil
}

func (r *statisticsRepository) ExpiringLicenses(ctx context.Context, from, until time.Time) ([]statistics.CompanyLicense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]statistics.CompanyLicense, 0)
	for _, c := range r.companies {
		if !within(c.LicenseExpiryDate, from, until) {
			continue
		}
		license := statistics.CompanyLicense{CompanyID: c.ID, CompanyName: c.Name, LicenseExpiryDate: c.LicenseExpiryDate}
		for _, e := range r.employees {
			if e.CompanyID == c.ID {
				license.EmployeeCount++
			}
		}
		list = append(list, license)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].LicenseExpiryDate.Before(list[j].LicenseExpiryDate) })
	return list, nil
}

func (r *statisticsRepository) PresentAttendance(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	joiner := attendanceRepository{r.Store}
	list := make([]attendance.Attendance, 0)
	for _, a := range r.checkedInLocked(date) {
		list = append(list, joiner.joined(a))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CheckIn.Before(*list[j].CheckIn) })
	return list, nil
}

func (r *statisticsRepository) AbsentEmployees(ctx context.Context, date time.Time) ([]statistics.AbsentEmployee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	present := r.checkedInLocked(date)
	list := make([]statistics.AbsentEmployee, 0)
	for _, e := range r.employees {
		if _, ok := present[e.ID]; ok {
			continue
		}
		list = append(list, statistics.AbsentEmployee{
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
			CompanyID:    e.CompanyID,
			CompanyName:  r.companies[e.CompanyID].Name,
			JobTitle:     e.JobTitle,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].EmployeeName < list[j].EmployeeName })
	return list, nil
}

func (r *statisticsRepository) PendingLeaves(ctx context.Context) ([]leave.Leave, error) {
	status := leave.StatusPending
	return (&leaveRepository{r.Store}).List(ctx, leave.Filter{Status: &status})
}

func (r *statisticsRepository) ApprovedLeavesOn(ctx context.Context, date time.Time) ([]leave.Leave, error) {
	status := leave.StatusApproved
	approved, err := (&leaveRepository{r.Store}).List(ctx, leave.Filter{Status: &status})
	if err != nil {
		return nil, err
	}

	list := make([]leave.Leave, 0, len(approved))
	for _, l := range approved {
		if l.IsActiveOn(date) {
			list = append(list, l)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StartDate.Before(list[j].StartDate) })
	return list, nil
}

func (r *statisticsRepository) AttendanceSheet(ctx context.Context, date time.Time) ([]statistics.SheetRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byEmployee := make(map[int64]attendance.Attendance)
	for _, a := range r.attendances {
		if a.Date.Equal(date) {
			byEmployee[a.EmployeeID] = a
		}
	}

	rows := make([]statistics.SheetRow, 0, len(r.employees))
	for _, e := range r.employees {
		row := statistics.SheetRow{EmployeeName: e.Name, CompanyName: r.companies[e.CompanyID].Name}
		if a, ok := byEmployee[e.ID]; ok {
			status := a.Status
			row.CheckIn, row.CheckOut, row.WorkDuration, row.Status = a.CheckIn, a.CheckOut, a.WorkDuration, &status
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CompanyName != rows[j].CompanyName {
			return rows[i].CompanyName < rows[j].CompanyName
		}
		return rows[i].EmployeeName < rows[j].EmployeeName
	})
	return rows, nil
}
