package employee

import "context"

type EmployeeRepository interface {
	// GetByID and List fill CompanyName.
	GetByID(ctx context.Context, id int64) (Employee, error)
	List(ctx context.Context, filter Filter) ([]Employee, error)

	// Create and Update return company.ErrCompanyNotFound when CompanyID does not exist.
	Create(ctx context.Context, employee Employee) (Employee, error)
	Update(ctx context.Context, employee Employee) error
	Delete(ctx context.Context, id int64) error

	// PhotoPathsByCompany returns the stored photos of every employee of a company.
	PhotoPathsByCompany(ctx context.Context, companyID int64) ([]string, error)
}
