package employee

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
)

const MaxPhotoSize = 5 << 20 // 5MB

// PhotoUpload is one image received with a create or update request.
type PhotoUpload struct {
	File     io.Reader
	Filename string
	Size     int64
}

// EmployeeRequest is used for both create and full update.
type EmployeeRequest struct {
	CompanyID          int64   `json:"company_id" validate:"required,gt=0"`
	Name               string  `json:"name" validate:"required,max=200"`
	JobTitle           string  `json:"job_title" validate:"max=200"`
	Salary             float64 `json:"salary" validate:"gte=0"`
	PassportNumber     string  `json:"passport_number" validate:"max=50"`
	PassportExpiryDate string  `json:"passport_expiry_date" validate:"required,datetime=2006-01-02"`
	IDExpiryDate       string  `json:"id_expiry_date" validate:"required,datetime=2006-01-02"`

	Photos map[Photo]*PhotoUpload `json:"-"`
}

func (r EmployeeRequest) Validate() error {
	errs := validator.Struct(r)

	for _, kind := range Photos {
		upload := r.Photos[kind]
		if upload == nil {
			continue
		}
		field := fmt.Sprintf("%s_photo", kind)
		ext := strings.ToLower(filepath.Ext(upload.Filename))
		switch {
		case upload.Size == 0:
			errs.Add(field, field+" is empty")
		case ext != ".jpg" && ext != ".jpeg" && ext != ".png":
			errs.Add(field, "invalid file type: only jpg, jpeg, png allowed")
		case upload.Size > MaxPhotoSize:
			errs.Add(field, field+" size must not exceed 5MB")
		}
	}

	return errs.Err()
}

// ApplyTo copies the validated scalar fields onto e. Photo paths are left untouched.
func (r EmployeeRequest) ApplyTo(e *Employee) {
	passportExpiry, _ := validator.IsValidDate(r.PassportExpiryDate)
	idExpiry, _ := validator.IsValidDate(r.IDExpiryDate)

	e.CompanyID = r.CompanyID
	e.Name = r.Name
	e.JobTitle = r.JobTitle
	e.Salary = r.Salary
	e.PassportNumber = r.PassportNumber
	e.PassportExpiryDate = passportExpiry
	e.IDExpiryDate = idExpiry
}

type Filter struct {
	CompanyID *int64
}

type EmployeeResponse struct {
	ID                 int64     `json:"id"`
	CompanyID          int64     `json:"company_id"`
	CompanyName        string    `json:"company_name"`
	Name               string    `json:"name"`
	JobTitle           string    `json:"job_title"`
	Salary             float64   `json:"salary"`
	PassportNumber     string    `json:"passport_number"`
	PassportExpiryDate string    `json:"passport_expiry_date"`
	IDExpiryDate       string    `json:"id_expiry_date"`
	PersonalPhotoURL   *string   `json:"personal_photo_url"`
	PassportPhotoURL   *string   `json:"passport_photo_url"`
	IDPhotoURL         *string   `json:"id_photo_url"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewEmployeeResponse builds the response, resolving stored photo paths through urlFor.
func NewEmployeeResponse(e Employee, urlFor func(path string) string) EmployeeResponse {
	resolve := func(path *string) *string {
		if path == nil || *path == "" {
			return nil
		}
		url := urlFor(*path)
		return &url
	}

	return EmployeeResponse{
		ID:                 e.ID,
		CompanyID:          e.CompanyID,
		CompanyName:        e.CompanyName,
		Name:               e.Name,
		JobTitle:           e.JobTitle,
		Salary:             e.Salary,
		PassportNumber:     e.PassportNumber,
		PassportExpiryDate: e.PassportExpiryDate.Format(validator.DateLayout),
		IDExpiryDate:       e.IDExpiryDate.Format(validator.DateLayout),
		PersonalPhotoURL:   resolve(e.PersonalPhotoPath),
		PassportPhotoURL:   resolve(e.PassportPhotoPath),
		IDPhotoURL:         resolve(e.IDPhotoPath),
		CreatedAt:          e.CreatedAt.In(clock.Location()),
	}
}
