package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context, employeeID int64) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID int64) (AttendanceResponse, error)

	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	Update(ctx context.Context, id int64, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (AttendanceResponse, error)
	List(ctx context.Context, filter Filter) ([]AttendanceResponse, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]AttendanceResponse, error)
}
