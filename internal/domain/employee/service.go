package employee

import "context"

type EmployeeService interface {
	List(ctx context.Context, filter Filter) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id int64) (EmployeeResponse, error)
	Create(ctx context.Context, req EmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, id int64, req EmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id int64) error
}
