package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/service/file"
)

type EmployeeServiceImpl struct {
	clock        clock.Clock
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
	fileService  file.FileService
}

func NewEmployeeService(
	clk clock.Clock,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	fileService file.FileService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		clock:        clk,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		fileService:  fileService,
	}
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.Filter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	out := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, employee.NewEmployeeResponse(e, s.urlResolver(ctx)))
	}
	return out, nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return employee.NewEmployeeResponse(e, s.urlResolver(ctx)), nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.ensureCompany(ctx, req.CompanyID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	uploaded, err := s.uploadPhotos(ctx, req.Photos)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{CreatedAt: s.clock.Now()}
	req.ApplyTo(&newEmployee)
	for kind, path := range uploaded {
		newEmployee.SetPhotoPath(kind, path)
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		s.deletePhotos(ctx, pathsOf(uploaded))
		if errors.Is(err, company.ErrCompanyNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return s.GetByID(ctx, created.ID)
}

// Update implements employee.EmployeeService.
// A replaced photo's old file is removed only after the row has been written.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id int64, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if existing.CompanyID != req.CompanyID {
		if err := s.ensureCompany(ctx, req.CompanyID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	uploaded, err := s.uploadPhotos(ctx, req.Photos)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var replaced []string
	req.ApplyTo(&existing)
	for kind, path := range uploaded {
		if old := existing.PhotoPath(kind); old != "" {
			replaced = append(replaced, old)
		}
		existing.SetPhotoPath(kind, path)
	}

	if err := s.employeeRepo.Update(ctx, existing); err != nil {
		s.deletePhotos(ctx, pathsOf(uploaded))
		if errors.Is(err, employee.ErrEmployeeNotFound) || errors.Is(err, company.ErrCompanyNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	s.deletePhotos(ctx, replaced)

	return s.GetByID(ctx, id)
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id int64) error {
	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	s.deletePhotos(ctx, existing.PhotoPaths())

	return nil
}

func (s *EmployeeServiceImpl) ensureCompany(ctx context.Context, companyID int64) error {
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return err
		}
		return fmt.Errorf("failed to get company: %w", err)
	}
	return nil
}

// uploadPhotos stores every provided photo. On failure the ones already stored are removed.
func (s *EmployeeServiceImpl) uploadPhotos(ctx context.Context, photos map[employee.Photo]*employee.PhotoUpload) (map[employee.Photo]string, error) {
	uploaded := make(map[employee.Photo]string)
	for _, kind := range employee.Photos {
		photo := photos[kind]
		if photo == nil {
			continue
		}

		path, err := s.fileService.UploadImage(ctx, "employees/"+string(kind), photo.File, photo.Filename)
		if err != nil {
			s.deletePhotos(ctx, pathsOf(uploaded))
			if errors.Is(err, file.ErrInvalidFileType) || errors.Is(err, file.ErrEmptyFile) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to upload %s photo: %w", kind, err)
		}
		uploaded[kind] = path
	}
	return uploaded, nil
}

// deletePhotos is best effort; failures are logged and swallowed.
func (s *EmployeeServiceImpl) deletePhotos(ctx context.Context, paths []string) {
	for _, path := range paths {
		if err := s.fileService.DeleteFile(ctx, path); err != nil {
			slog.Warn("Failed to delete employee photo", "path", path, "error", err)
		}
	}
}

func (s *EmployeeServiceImpl) urlResolver(ctx context.Context) func(string) string {
	return func(path string) string {
		url, err := s.fileService.GetFileURL(ctx, path)
		if err != nil {
			slog.Warn("Failed to resolve photo URL", "path", path, "error", err)
			return ""
		}
		return url
	}
}

func pathsOf(uploaded map[employee.Photo]string) []string {
	paths := make([]string, 0, len(uploaded))
	for _, path := range uploaded {
		paths = append(paths, path)
	}
	return paths
}
