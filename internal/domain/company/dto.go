package company

import (
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
)

type CreateCompanyRequest struct {
	Name              string `json:"name" validate:"required,max=200"`
	Location          string `json:"location" validate:"max=200"`
	CompanyNumber     string `json:"company_number" validate:"max=100"`
	LicenseExpiryDate string `json:"license_expiry_date" validate:"required,datetime=2006-01-02"`
}

func (r CreateCompanyRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.Name) && len(r.Name) > 0 {
		errs.Add("name", "name is required")
	}
	return errs.Err()
}

// ToEntity converts a validated request.
func (r CreateCompanyRequest) ToEntity() Company {
	expiry, _ := validator.IsValidDate(r.LicenseExpiryDate)
	return Company{
		Name:              r.Name,
		Location:          r.Location,
		CompanyNumber:     r.CompanyNumber,
		LicenseExpiryDate: expiry,
	}
}

// UpdateCompanyRequest replaces every field.
type UpdateCompanyRequest struct {
	CreateCompanyRequest
}

type CompanyResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Location          string    `json:"location"`
	CompanyNumber     string    `json:"company_number"`
	LicenseExpiryDate string    `json:"license_expiry_date"`
	EmployeeCount     int64     `json:"employee_count"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:                c.ID,
		Name:              c.Name,
		Location:          c.Location,
		CompanyNumber:     c.CompanyNumber,
		LicenseExpiryDate: c.LicenseExpiryDate.Format(validator.DateLayout),
		EmployeeCount:     c.EmployeeCount,
		CreatedAt:         c.CreatedAt.In(clock.Location()),
	}
}
