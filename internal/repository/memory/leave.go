package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/leave"
)

type leaveRepository struct {
	*Store
}

func (r *leaveRepository) joined(l leave.Leave) leave.Leave {
	l.EmployeeName = r.employees[l.EmployeeID].Name
	return l
}

func (r *leaveRepository) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[l.EmployeeID]; !ok {
		return leave.Leave{}, employee.ErrEmployeeNotFound
	}
	l.ID = r.id()
	r.leaves[l.ID] = l
	return r.joined(l), nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id int64) (leave.Leave, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return r.joined(l), nil
}

func (r *leaveRepository) Update(ctx context.Context, l leave.Leave) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.leaves[l.ID]
	if !ok {
		return leave.ErrLeaveNotFound
	}
	if !existing.IsPending() {
		return leave.ErrNotPending
	}
	existing.StartDate = l.StartDate
	existing.EndDate = l.EndDate
	existing.DayCount = l.DayCount
	existing.LeaveType = l.LeaveType
	existing.Reason = l.Reason
	r.leaves[l.ID] = existing
	return nil
}

func (r *leaveRepository) Review(ctx context.Context, l leave.Leave) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.leaves[l.ID]
	if !ok {
		return leave.ErrLeaveNotFound
	}
	if !existing.IsPending() {
		return leave.ErrNotPending
	}
	existing.Status = l.Status
	existing.RejectionReason = l.RejectionReason
	existing.ReviewedAt = l.ReviewedAt
	r.leaves[l.ID] = existing
	return nil
}

func (r *leaveRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.leaves[id]
	if !ok {
		return leave.ErrLeaveNotFound
	}
	if existing.Status == leave.StatusApproved {
		return leave.ErrCannotDeleteApproved
	}
	delete(r.leaves, id)
	return nil
}

func (r *leaveRepository) List(ctx context.Context, filter leave.Filter) ([]leave.Leave, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]leave.Leave, 0)
	for _, l := range r.leaves {
		if filter.EmployeeID != nil && l.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && l.Status != *filter.Status {
			continue
		}
		list = append(list, r.joined(l))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *leaveRepository) HasOverlap(ctx context.Context, employeeID int64, start, end time.Time, excludeID *int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, l := range r.leaves {
		if l.EmployeeID != employeeID || l.Status == leave.StatusRejected {
			continue
		}
		if excludeID != nil && id == *excludeID {
			continue
		}
		if leave.Overlaps(start, end, l.StartDate, l.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

func (r *leaveRepository) LockEmployee(ctx context.Context, employeeID int64) error {
	r.mu.RLock()
	_, ok := r.employees[employeeID]
	r.mu.RUnlock()
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	r.lockRow(ctx, fmt.Sprintf("employees/%d", employeeID))
	return nil
}
