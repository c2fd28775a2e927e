package leave

import (
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
)

// ========================================
// REQUEST / UPDATE
// ========================================

type PeriodRequest struct {
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	LeaveType string  `json:"leave_type" validate:"required,max=50"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// Period is a parsed PeriodRequest. The range itself is checked by the service.
type Period struct {
	StartDate time.Time
	EndDate   time.Time
	LeaveType string
	Reason    *string
}

func (r PeriodRequest) Parse() (Period, error) {
	if errs := validator.Struct(r); len(errs) > 0 {
		return Period{}, errs
	}
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)

	p := Period{StartDate: start, EndDate: end, LeaveType: r.LeaveType}
	if r.Reason != nil && !validator.IsEmpty(*r.Reason) {
		p.Reason = r.Reason
	}
	return p, nil
}

type CreateLeaveRequest struct {
	EmployeeID int64 `json:"employee_id"`
	PeriodRequest
}

func (r CreateLeaveRequest) Validate() error {
	_, err := r.Parse()
	return err
}

func (r CreateLeaveRequest) Parse() (Period, error) {
	var errs validator.ValidationErrors
	if r.EmployeeID <= 0 {
		errs.Add("employee_id", "employee_id is required")
	}

	period, err := r.PeriodRequest.Parse()
	if periodErrs, ok := err.(validator.ValidationErrors); ok {
		errs = append(errs, periodErrs...)
	}

	if len(errs) > 0 {
		return Period{}, errs
	}
	return period, nil
}

type UpdateLeaveRequest struct {
	PeriodRequest
}

func (r UpdateLeaveRequest) Validate() error {
	_, err := r.Parse()
	return err
}

// ========================================
// REVIEW
// ========================================

type ReviewLeaveRequest struct {
	Status          string  `json:"status" validate:"required"`
	RejectionReason *string `json:"rejection_reason,omitempty" validate:"omitempty,max=500"`
}

func (r ReviewLeaveRequest) Validate() error {
	return validator.Struct(r).Err()
}

// ========================================
// LIST FILTER
// ========================================

type ListLeavesRequest struct {
	EmployeeID *int64  `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
}

type Filter struct {
	EmployeeID *int64
	Status     *Status
}

func (r ListLeavesRequest) Parse() (Filter, error) {
	filter := Filter{EmployeeID: r.EmployeeID}
	if r.Status != nil && !validator.IsEmpty(*r.Status) {
		status := Status(*r.Status)
		if !validator.IsInSlice(string(status), []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}) {
			return Filter{}, validator.ValidationErrors{{Field: "status", Message: "status must be one of: Pending, Approved, Rejected"}}
		}
		filter.Status = &status
	}
	return filter, nil
}

// ========================================
// RESPONSE
// ========================================

type LeaveResponse struct {
	ID              int64      `json:"id"`
	EmployeeID      int64      `json:"employee_id"`
	EmployeeName    string     `json:"employee_name,omitempty"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	DayCount        int        `json:"day_count"`
	LeaveType       string     `json:"leave_type"`
	Status          Status     `json:"status"`
	Reason          *string    `json:"reason"`
	RejectionReason *string    `json:"rejection_reason"`
	CreatedAt       time.Time  `json:"created_at"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
}

func NewLeaveResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID,
		EmployeeID:      l.EmployeeID,
		EmployeeName:    l.EmployeeName,
		StartDate:       l.StartDate.Format(validator.DateLayout),
		EndDate:         l.EndDate.Format(validator.DateLayout),
		DayCount:        l.DayCount,
		LeaveType:       l.LeaveType,
		Status:          l.Status,
		Reason:          l.Reason,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.In(clock.Location()),
	}
	if l.ReviewedAt != nil {
		reviewed := l.ReviewedAt.In(clock.Location())
		resp.ReviewedAt = &reviewed
	}
	return resp
}

func NewLeaveResponses(list []Leave) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(list))
	for _, l := range list {
		out = append(out, NewLeaveResponse(l))
	}
	return out
}
