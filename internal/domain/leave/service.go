package leave

import "context"

type LeaveService interface {
	RequestLeave(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	UpdateLeave(ctx context.Context, id int64, req UpdateLeaveRequest) (LeaveResponse, error)
	Review(ctx context.Context, id int64, req ReviewLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (LeaveResponse, error)
	List(ctx context.Context, filter Filter) ([]LeaveResponse, error)
}
