package leave

import "errors"

var (
	ErrLeaveNotFound        = errors.New("leave request not found")
	ErrInvalidRange         = errors.New("end date must not be earlier than start date")
	ErrOverlappingLeave     = errors.New("leave request overlaps an existing leave for this employee")
	ErrNotPending           = errors.New("leave request has already been reviewed")
	ErrInvalidDecision      = errors.New("status must be Approved or Rejected")
	ErrCannotDeleteApproved = errors.New("approved leave requests cannot be deleted")
)
