package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/company"
)

type companyRepository struct {
	*Store
}

func (r *companyRepository) withCount(c company.Company) company.Company {
	c.EmployeeCount = 0
	for _, e := range r.employees {
		if e.CompanyID == c.ID {
			c.EmployeeCount++
		}
	}
	return c
}

func (r *companyRepository) GetByID(ctx context.Context, id int64) (company.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return r.withCount(c), nil
}

func (r *companyRepository) List(ctx context.Context) ([]company.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]company.Company, 0, len(r.companies))
	for _, c := range r.companies {
		list = append(list, r.withCount(c))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *companyRepository) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newCompany.ID = r.id()
	newCompany.EmployeeCount = 0
	r.companies[newCompany.ID] = newCompany
	return newCompany, nil
}

func (r *companyRepository) Update(ctx context.Context, c company.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.companies[c.ID]
	if !ok {
		return company.ErrCompanyNotFound
	}
	c.CreatedAt = existing.CreatedAt
	r.companies[c.ID] = c
	return nil
}

func (r *companyRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[id]; !ok {
		return company.ErrCompanyNotFound
	}
	delete(r.companies, id)
	for empID, e := range r.employees {
		if e.CompanyID == id {
			r.deleteEmployeeLocked(empID)
		}
	}
	return nil
}
