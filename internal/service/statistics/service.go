package statistics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/statistics"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

const DefaultExpiryWindowDays = 30

type StatisticsServiceImpl struct {
	clock            clock.Clock
	expiryWindowDays int
	statisticsRepo   statistics.StatisticsRepository
	companyRepo      company.CompanyRepository
}

func NewStatisticsService(
	clk clock.Clock,
	expiryWindowDays int,
	statisticsRepo statistics.StatisticsRepository,
	companyRepo company.CompanyRepository,
) statistics.StatisticsService {
	if expiryWindowDays <= 0 {
		expiryWindowDays = DefaultExpiryWindowDays
	}
	return &StatisticsServiceImpl{
		clock:            clk,
		expiryWindowDays: expiryWindowDays,
		statisticsRepo:   statisticsRepo,
		companyRepo:      companyRepo,
	}
}

// window returns today and the last day of the expiry window, both inclusive.
func (s *StatisticsServiceImpl) window() (time.Time, time.Time) {
	today := s.clock.Today()
	return today, today.AddDate(0, 0, s.expiryWindowDays)
}

// Dashboard returns combined statistics using parallel goroutines, one query each.
func (s *StatisticsServiceImpl) Dashboard(ctx context.Context) (statistics.DashboardResponse, error) {
	today, until := s.window()

	var (
		employees  statistics.EmployeeSummary
		companies  statistics.CompanySummary
		present    int64
		leaves     statistics.LeaveSummary
		perCompany []statistics.CompanyEmployeeCount
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Employee totals and document expiry
	g.Go(func() error {
		var err error
		employees, err = s.statisticsRepo.EmployeeSummary(gCtx, today, until, nil)
		return err
	})

	// 2. Company totals and license expiry
	g.Go(func() error {
		var err error
		companies, err = s.statisticsRepo.CompanySummary(gCtx, today, until)
		return err
	})

	// 3. Checked in today
	g.Go(func() error {
		var err error
		present, err = s.statisticsRepo.CheckedInCount(gCtx, today)
		return err
	})

	// 4. Pending and active approved leaves
	g.Go(func() error {
		var err error
		leaves, err = s.statisticsRepo.LeaveSummary(gCtx, today)
		return err
	})

	// 5. Employees per company
	g.Go(func() error {
		var err error
		perCompany, err = s.statisticsRepo.EmployeeCountsByCompany(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return statistics.DashboardResponse{}, fmt.Errorf("failed to build dashboard: %w", err)
	}

	absent := employees.Total - present
	if absent < 0 {
		absent = 0
	}

	return statistics.DashboardResponse{
		Date:                today.Format(validator.DateLayout),
		ExpiryWindowDays:    s.expiryWindowDays,
		TotalCompanies:      companies.Total,
		TotalEmployees:      employees.Total,
		ExpiringPassports:   employees.ExpiringPassports,
		ExpiringIDs:         employees.ExpiringIDs,
		ExpiringLicenses:    companies.ExpiringLicenses,
		TodayPresent:        present,
		TodayAbsent:         absent,
		PendingLeaves:       leaves.Pending,
		ApprovedLeavesToday: leaves.ApprovedActive,
		EmployeesPerCompany: perCompany,
	}, nil
}

// CompanyStats implements statistics.StatisticsService.
func (s *StatisticsServiceImpl) CompanyStats(ctx context.Context, companyID int64) (statistics.CompanyStatsResponse, error) {
	comp, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return statistics.CompanyStatsResponse{}, err
		}
		return statistics.CompanyStatsResponse{}, fmt.Errorf("failed to get company by ID: %w", err)
	}

	today, until := s.window()
	summary, err := s.statisticsRepo.EmployeeSummary(ctx, today, until, &companyID)
	if err != nil {
		return statistics.CompanyStatsResponse{}, fmt.Errorf("failed to get employee summary: %w", err)
	}

	return statistics.CompanyStatsResponse{
		CompanyID:             comp.ID,
		CompanyName:           comp.Name,
		TotalEmployees:        summary.Total,
		ExpiringPassports:     summary.ExpiringPassports,
		ExpiringIDs:           summary.ExpiringIDs,
		LicenseExpiryDate:     comp.LicenseExpiryDate.Format(validator.DateLayout),
		IsLicenseExpiringSoon: !comp.LicenseExpiryDate.Before(today) && !comp.LicenseExpiryDate.After(until),
	}, nil
}

// ExpiringPassports implements statistics.StatisticsService.
func (s *StatisticsServiceImpl) ExpiringPassports(ctx context.Context) ([]statistics.EmployeeExpiryResponse, error) {
	today, until := s.window()
	list, err := s.statisticsRepo.ExpiringPassports(ctx, today, until)
	if err != nil {
		return nil, fmt.Errorf("failed to get expiring passports: %w", err)
	}
	return statistics.NewEmployeeExpiryResponses(list), nil
}

// ExpiringIDs implements statistics.StatisticsService.
func (s *StatisticsServiceImpl) ExpiringIDs(ctx context.Context) ([]statistics.EmployeeExpiryResponse, error) {
	today, until := s.window()
	list, err := s.statisticsRepo.ExpiringIDs(ctx, today, until)
	if err != nil {
		return nil, fmt.Errorf("failed to get expiring IDs: %w", err)
	}
	return statistics.NewEmployeeExpiryResponses(list), nil
}

// ExpiringLicenses implements statistics.StatisticsService.
func (s *StatisticsServiceImpl) ExpiringLicenses(ctx context.Context) ([]statistics.CompanyLicenseResponse, error) {
	today, until := s.window()
	list, err := s.statisticsRepo.ExpiringLicenses(ctx, today, until)
	if err != nil {
		return nil, fmt.Errorf("failed to get expiring licenses: %w", err)
	}
	return statistics.NewCompanyLicenseResponses(list), nil
}

// TodayPresent implements statistics.StatisticsService.
func (s *StatisticsServiceImpl) TodayPresent(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	list, err := s.statisticsRepo.PresentAttendance(ctx, s.clock.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to get present employees: %w", err)
	}
	return attendance.NewAttendanceResponses(list), nil
}

// TodayAbsent implements statistics.StatisticsService.
func (s *StatisticsServiceImpl) TodayAbsent(ctx context.Context) ([]statistics.AbsentEmployeeResponse, error) {
	list, err := s.statisticsRepo.AbsentEmployees(ctx, s.clock.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to get absent employees: %w", err)
	}
	return statistics.NewAbsentEmployeeResponses(list), nil
}

// PendingLeaves implements statistics.StatisticsService.
func (s *StatisticsServiceImpl) PendingLeaves(ctx context.Context) ([]leave.LeaveResponse, error) {
	list, err := s.statisticsRepo.PendingLeaves(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending leaves: %w", err)
	}
	return leave.NewLeaveResponses(list), nil
}

// ApprovedLeavesToday implements statistics.StatisticsService.
func (s *StatisticsServiceImpl) ApprovedLeavesToday(ctx context.Context) ([]leave.LeaveResponse, error) {
	list, err := s.statisticsRepo.ApprovedLeavesOn(ctx, s.clock.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to get approved leaves: %w", err)
	}
	return leave.NewLeaveResponses(list), nil
}
