package company

import "context"

type CompanyRepository interface {
	// GetByID and List fill EmployeeCount.
	GetByID(ctx context.Context, id int64) (Company, error)
	List(ctx context.Context) ([]Company, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
	Update(ctx context.Context, company Company) error
	// Delete cascades to the company's employees and their records.
	Delete(ctx context.Context, id int64) error
}
