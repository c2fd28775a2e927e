package employee

import "time"

// Photo identifies one of the three image slots on an employee.
type Photo string

const (
	PhotoPersonal Photo = "personal"
	PhotoPassport Photo = "passport"
	PhotoID       Photo = "id"
)

// Photos lists every slot in a stable order.
var Photos = []Photo{PhotoPersonal, PhotoPassport, PhotoID}

type Employee struct {
	ID                 int64
	CompanyID          int64
	Name               string
	JobTitle           string
	Salary             float64
	PassportNumber     string
	PassportExpiryDate time.Time
	IDExpiryDate       time.Time
	PersonalPhotoPath  *string
	PassportPhotoPath  *string
	IDPhotoPath        *string
	CreatedAt          time.Time

	// Joined
	CompanyName string
}

func (e *Employee) photoSlot(kind Photo) **string {
	switch kind {
	case PhotoPersonal:
		return &e.PersonalPhotoPath
	case PhotoPassport:
		return &e.PassportPhotoPath
	case PhotoID:
		return &e.IDPhotoPath
	}
	return nil
}

// PhotoPath returns the stored path for kind, or "" when unset.
func (e *Employee) PhotoPath(kind Photo) string {
	if slot := e.photoSlot(kind); slot != nil && *slot != nil {
		return **slot
	}
	return ""
}

func (e *Employee) SetPhotoPath(kind Photo, path string) {
	if slot := e.photoSlot(kind); slot != nil {
		*slot = &path
	}
}

// PhotoPaths returns every non-empty stored photo path.
func (e *Employee) PhotoPaths() []string {
	var paths []string
	for _, kind := range Photos {
		if p := e.PhotoPath(kind); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
