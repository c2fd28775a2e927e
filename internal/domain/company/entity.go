package company

import "time"

type Company struct {
	ID                int64
	Name              string
	Location          string
	CompanyNumber     string
	LicenseExpiryDate time.Time
	CreatedAt         time.Time

	// Derived
	EmployeeCount int64
}
