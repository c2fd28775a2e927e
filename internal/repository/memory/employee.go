package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	*Store
}

func (r *employeeRepository) joined(e employee.Employee) employee.Employee {
	e.CompanyName = r.companies[e.CompanyID].Name
	return e
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.joined(e), nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]employee.Employee, 0)
	for _, e := range r.employees {
		if filter.CompanyID != nil && e.CompanyID != *filter.CompanyID {
			continue
		}
		list = append(list, r.joined(e))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[e.CompanyID]; !ok {
		return employee.Employee{}, company.ErrCompanyNotFound
	}
	e.ID = r.id()
	r.employees[e.ID] = e
	return r.joined(e), nil
}

func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.employees[e.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if _, ok := r.companies[e.CompanyID]; !ok {
		return company.ErrCompanyNotFound
	}
	e.CreatedAt = existing.CreatedAt
	e.CompanyName = ""
	r.employees[e.ID] = e
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	r.deleteEmployeeLocked(id)
	return nil
}

func (r *employeeRepository) PhotoPathsByCompany(ctx context.Context, companyID int64) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var paths []string
	for _, e := range r.employees {
		if e.CompanyID == companyID {
			paths = append(paths, e.PhotoPaths()...)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// deleteEmployeeLocked removes an employee with its attendance and leaves. Caller holds mu.
func (s *Store) deleteEmployeeLocked(id int64) {
	delete(s.employees, id)
	for attID, a := range s.attendances {
		if a.EmployeeID == id {
			delete(s.attendances, attID)
		}
	}
	for leaveID, l := range s.leaves {
		if l.EmployeeID == id {
			delete(s.leaves, leaveID)
		}
	}
}
