package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	clock          clock.Clock
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID int64) (attendance.AttendanceResponse, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now()
	today := clock.DateOf(now)

	var recordID int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		// A backfilled row without check-in is completed in place.
		if existing != nil {
			if existing.CheckIn != nil {
				return attendance.ErrAlreadyCheckedIn
			}
			existing.CheckIn = &now
			existing.Status = attendance.StatusPresent
			if err := s.attendanceRepo.Update(ctx, *existing); err != nil {
				return fmt.Errorf("failed to update attendance: %w", err)
			}
			recordID = existing.ID
			return nil
		}

		created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
			EmployeeID: employeeID,
			Date:       today,
			CheckIn:    &now,
			Status:     attendance.StatusPresent,
			CreatedAt:  now,
		})
		if err != nil {
			if errors.Is(err, attendance.ErrDuplicateForDate) {
				return attendance.ErrAlreadyCheckedIn
			}
			return fmt.Errorf("failed to create attendance: %w", err)
		}
		recordID = created.ID
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return s.GetByID(ctx, recordID)
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID int64) (attendance.AttendanceResponse, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now()
	today := clock.DateOf(now)

	var recordID int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		if existing == nil || existing.CheckIn == nil {
			return attendance.ErrNotCheckedIn
		}
		if existing.CheckOut != nil {
			return attendance.ErrAlreadyCheckedOut
		}

		duration := now.Sub(*existing.CheckIn)
		existing.CheckOut = &now
		existing.WorkDuration = &duration
		if err := s.attendanceRepo.Update(ctx, *existing); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		recordID = existing.ID
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return s.GetByID(ctx, recordID)
}

// Create implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	entry, err := req.Parse()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.ensureEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       entry.Date,
		Notes:      entry.Notes,
		CreatedAt:  s.clock.Now(),
	}
	record.SetManualTimes(entry.CheckIn, entry.CheckOut)

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateForDate) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return s.GetByID(ctx, created.ID)
}

// Update implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Update(ctx context.Context, id int64, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	entry, err := req.Parse()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record.Date = entry.Date
	record.Notes = entry.Notes
	record.SetManualTimes(entry.CheckIn, entry.CheckOut)

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		if errors.Is(err, attendance.ErrDuplicateForDate) || errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.attendanceRepo.Delete(ctx, id)
}

// GetByID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByID(ctx context.Context, id int64) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(record), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.AttendanceResponse, error) {
	records, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// ListByEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]attendance.AttendanceResponse, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.List(ctx, attendance.Filter{EmployeeID: &employeeID})
}

func (s *AttendanceServiceImpl) ensureEmployee(ctx context.Context, employeeID int64) error {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}
	return nil
}

func NewAttendanceService(
	tx database.Transactor,
	clk clock.Clock,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		clock:          clk,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}
