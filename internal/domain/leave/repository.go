package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, leave Leave) (Leave, error)
	GetByID(ctx context.Context, id int64) (Leave, error)

	// Update rewrites the period fields of a leave that is still Pending.
	// Returns ErrNotPending when the row has been reviewed in the meantime.
	Update(ctx context.Context, leave Leave) error

	// Review moves a Pending leave to its final status.
	// Returns ErrNotPending when the row is no longer Pending.
	Review(ctx context.Context, leave Leave) error

	// Delete removes a leave unless it is Approved, in which case ErrCannotDeleteApproved is returned.
	Delete(ctx context.Context, id int64) error

	// List returns leaves ordered by creation time, newest first.
	List(ctx context.Context, filter Filter) ([]Leave, error)

	// HasOverlap reports whether the employee has a non-rejected leave sharing a day with [start, end].
	// excludeID skips the leave being edited.
	HasOverlap(ctx context.Context, employeeID int64, start, end time.Time, excludeID *int64) (bool, error)

	// LockEmployee holds the employee's row until the surrounding transaction ends,
	// serializing leave writes for that employee. Returns employee.ErrEmployeeNotFound.
	LockEmployee(ctx context.Context, employeeID int64) error
}
