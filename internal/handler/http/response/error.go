package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Not found
	case errors.Is(err, company.ErrCompanyNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, leave.ErrLeaveNotFound),
		errors.Is(err, user.ErrUserNotFound):
		NotFound(w, err.Error())

	// Business rule conflicts
	case errors.Is(err, attendance.ErrDuplicateForDate),
		errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, leave.ErrOverlappingLeave),
		errors.Is(err, leave.ErrNotPending),
		errors.Is(err, leave.ErrCannotDeleteApproved),
		errors.Is(err, auth.ErrUsernameTaken):
		Conflict(w, err.Error())

	// Malformed input outside struct validation
	case errors.Is(err, leave.ErrInvalidRange),
		errors.Is(err, leave.ErrInvalidDecision),
		errors.Is(err, file.ErrInvalidFileType),
		errors.Is(err, file.ErrEmptyFile):
		BadRequest(w, err.Error(), nil)

	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
