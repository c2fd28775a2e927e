package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	tx           database.Transactor
	clock        clock.Clock
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
}

// RequestLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) RequestLeave(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	period, err := req.Parse()
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveResponse{}, err
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if period.EndDate.Before(period.StartDate) {
		return leave.LeaveResponse{}, leave.ErrInvalidRange
	}

	var created leave.Leave
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.leaveRepo.LockEmployee(ctx, req.EmployeeID); err != nil {
			return err
		}
		overlap, err := s.leaveRepo.HasOverlap(ctx, req.EmployeeID, period.StartDate, period.EndDate, nil)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leaves: %w", err)
		}
		if overlap {
			return leave.ErrOverlappingLeave
		}

		created, err = s.leaveRepo.Create(ctx, leave.Leave{
			EmployeeID: req.EmployeeID,
			StartDate:  period.StartDate,
			EndDate:    period.EndDate,
			DayCount:   leave.DayCount(period.StartDate, period.EndDate),
			LeaveType:  period.LeaveType,
			Status:     leave.StatusPending,
			Reason:     period.Reason,
			CreatedAt:  s.clock.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to create leave: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return s.GetByID(ctx, created.ID)
}

// UpdateLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateLeave(ctx context.Context, id int64, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	period, err := req.Parse()
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.leaveRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !existing.IsPending() {
			return leave.ErrNotPending
		}
		if period.EndDate.Before(period.StartDate) {
			return leave.ErrInvalidRange
		}

		if err := s.leaveRepo.LockEmployee(ctx, existing.EmployeeID); err != nil {
			return err
		}
		overlap, err := s.leaveRepo.HasOverlap(ctx, existing.EmployeeID, period.StartDate, period.EndDate, &existing.ID)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leaves: %w", err)
		}
		if overlap {
			return leave.ErrOverlappingLeave
		}

		existing.StartDate = period.StartDate
		existing.EndDate = period.EndDate
		existing.DayCount = leave.DayCount(period.StartDate, period.EndDate)
		existing.LeaveType = period.LeaveType
		existing.Reason = period.Reason
		return s.leaveRepo.Update(ctx, existing)
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return s.GetByID(ctx, id)
}

// Review implements leave.LeaveService.
func (s *LeaveServiceImpl) Review(ctx context.Context, id int64, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	existing, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}
	decision := leave.Status(req.Status)
	if decision != leave.StatusApproved && decision != leave.StatusRejected {
		return leave.LeaveResponse{}, leave.ErrInvalidDecision
	}

	if !existing.IsPending() {
		return leave.LeaveResponse{}, leave.ErrNotPending
	}

	reviewedAt := s.clock.Now()
	existing.Status = decision
	existing.ReviewedAt = &reviewedAt
	existing.RejectionReason = nil
	if decision == leave.StatusRejected {
		existing.RejectionReason = req.RejectionReason
	}

	// The repository re-checks Pending so two concurrent reviews cannot both win.
	if err := s.leaveRepo.Review(ctx, existing); err != nil {
		return leave.LeaveResponse{}, err
	}

	return s.GetByID(ctx, id)
}

// Delete implements leave.LeaveService.
func (s *LeaveServiceImpl) Delete(ctx context.Context, id int64) error {
	existing, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status == leave.StatusApproved {
		return leave.ErrCannotDeleteApproved
	}
	return s.leaveRepo.Delete(ctx, id)
}

// GetByID implements leave.LeaveService.
func (s *LeaveServiceImpl) GetByID(ctx context.Context, id int64) (leave.LeaveResponse, error) {
	l, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.NewLeaveResponse(l), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.Filter) ([]leave.LeaveResponse, error) {
	leaves, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return leave.NewLeaveResponses(leaves), nil
}

func NewLeaveService(
	tx database.Transactor,
	clk clock.Clock,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:           tx,
		clock:        clk,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
	}
}
