package company

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

type CompanyServiceImpl struct {
	clock        clock.Clock
	companyRepo  company.CompanyRepository
	employeeRepo employee.EmployeeRepository
	fileService  file.FileService
}

// List implements company.CompanyService.
func (c *CompanyServiceImpl) List(ctx context.Context) ([]company.CompanyResponse, error) {
	companies, err := c.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	out := make([]company.CompanyResponse, 0, len(companies))
	for _, comp := range companies {
		out = append(out, company.NewCompanyResponse(comp))
	}
	return out, nil
}

// Create implements company.CompanyService.
func (c *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	newCompany := req.ToEntity()
	newCompany.CreatedAt = c.clock.Now()

	created, err := c.companyRepo.Create(ctx, newCompany)
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to create company: %w", err)
	}
	slog.Info("Created company", "company_id", created.ID, "name", created.Name)

	return company.NewCompanyResponse(created), nil
}

// GetByID implements company.CompanyService.
func (c *CompanyServiceImpl) GetByID(ctx context.Context, id int64) (company.CompanyResponse, error) {
	comp, err := c.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.CompanyResponse{}, err
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company by ID: %w", err)
	}
	return company.NewCompanyResponse(comp), nil
}

// Update implements company.CompanyService.
func (c *CompanyServiceImpl) Update(ctx context.Context, id int64, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	existing, err := c.companyRepo.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	updated := req.ToEntity()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := c.companyRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.CompanyResponse{}, err
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to update company: %w", err)
	}

	return c.GetByID(ctx, id)
}

// Delete implements company.CompanyService.
// Employee photos are collected first because the cascade removes their rows.
func (c *CompanyServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := c.companyRepo.GetByID(ctx, id); err != nil {
		return err
	}

	photos, err := c.employeeRepo.PhotoPathsByCompany(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to collect employee photos: %w", err)
	}

	if err := c.companyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete company: %w", err)
	}

	for _, path := range photos {
		if err := c.fileService.DeleteFile(ctx, path); err != nil {
			slog.Warn("Failed to delete employee photo", "company_id", id, "path", path, "error", err)
		}
	}
	slog.Info("Deleted company", "company_id", id, "photos_removed", len(photos))

	return nil
}

func NewCompanyService(
	clk clock.Clock,
	companyRepo company.CompanyRepository,
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
) company.CompanyService {
	return &CompanyServiceImpl{
		clock:        clk,
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		fileService:  fileService,
	}
}
