package statistics

import (
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
)

// ========== DASHBOARD ==========

type DashboardResponse struct {
	Date                string                 `json:"date"`
	ExpiryWindowDays    int                    `json:"expiry_window_days"`
	TotalCompanies      int64                  `json:"total_companies"`
	TotalEmployees      int64                  `json:"total_employees"`
	ExpiringPassports   int64                  `json:"expiring_passports"`
	ExpiringIDs         int64                  `json:"expiring_ids"`
	ExpiringLicenses    int64                  `json:"expiring_licenses"`
	TodayPresent        int64                  `json:"today_present"`
	TodayAbsent         int64                  `json:"today_absent"`
	PendingLeaves       int64                  `json:"pending_leaves"`
	ApprovedLeavesToday int64                  `json:"approved_leaves_today"`
	EmployeesPerCompany []CompanyEmployeeCount `json:"employees_per_company"`
}

type CompanyEmployeeCount struct {
	CompanyID     int64  `json:"company_id"`
	CompanyName   string `json:"company_name"`
	EmployeeCount int64  `json:"employee_count"`
}

// ========== COMPANY ==========

type CompanyStatsResponse struct {
	CompanyID             int64  `json:"company_id"`
	CompanyName           string `json:"company_name"`
	TotalEmployees        int64  `json:"total_employees"`
	ExpiringPassports     int64  `json:"expiring_passports"`
	ExpiringIDs           int64  `json:"expiring_ids"`
	LicenseExpiryDate     string `json:"license_expiry_date"`
	IsLicenseExpiringSoon bool   `json:"is_license_expiring_soon"`
}

// ========== DETAIL LISTS ==========

type EmployeeExpiryResponse struct {
	EmployeeID     int64  `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	CompanyID      int64  `json:"company_id"`
	CompanyName    string `json:"company_name"`
	PassportNumber string `json:"passport_number,omitempty"`
	ExpiryDate     string `json:"expiry_date"` // Format: "YYYY-MM-DD"
}

func NewEmployeeExpiryResponses(list []EmployeeExpiry) []EmployeeExpiryResponse {
	out := make([]EmployeeExpiryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, EmployeeExpiryResponse{
			EmployeeID:     e.EmployeeID,
			EmployeeName:   e.EmployeeName,
			CompanyID:      e.CompanyID,
			CompanyName:    e.CompanyName,
			PassportNumber: e.PassportNumber,
			ExpiryDate:     e.ExpiryDate.Format(validator.DateLayout),
		})
	}
	return out
}

type CompanyLicenseResponse struct {
	CompanyID         int64  `json:"company_id"`
	CompanyName       string `json:"company_name"`
	LicenseExpiryDate string `json:"license_expiry_date"`
	EmployeeCount     int64  `json:"employee_count"`
}

func NewCompanyLicenseResponses(list []CompanyLicense) []CompanyLicenseResponse {
	out := make([]CompanyLicenseResponse, 0, len(list))
	for _, c := range list {
		out = append(out, CompanyLicenseResponse{
			CompanyID:         c.CompanyID,
			CompanyName:       c.CompanyName,
			LicenseExpiryDate: c.LicenseExpiryDate.Format(validator.DateLayout),
			EmployeeCount:     c.EmployeeCount,
		})
	}
	return out
}

type AbsentEmployeeResponse struct {
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	CompanyID    int64  `json:"company_id"`
	CompanyName  string `json:"company_name"`
	JobTitle     string `json:"job_title"`
}

func NewAbsentEmployeeResponses(list []AbsentEmployee) []AbsentEmployeeResponse {
	out := make([]AbsentEmployeeResponse, 0, len(list))
	for _, a := range list {
		out = append(out, AbsentEmployeeResponse(a))
	}
	return out
}

// ========== REPORT ==========

type AttendanceReportRequest struct {
	Date *string `json:"date,omitempty"` // Format: "YYYY-MM-DD", defaults to today
}
