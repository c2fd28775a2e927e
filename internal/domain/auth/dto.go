package auth

import (
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
)

const minPasswordLength = 6

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validator.Struct(r).Err()
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

func (r *RegisterRequest) Validate() error {
	return validator.Struct(r).Err()
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=255"`
}

func (r *ChangePasswordRequest) Validate() error {
	errs := validator.Struct(r)
	if r.NewPassword != "" && r.NewPassword == r.CurrentPassword && len(r.NewPassword) >= minPasswordLength {
		errs.Add("new_password", "new_password must differ from current_password")
	}
	return errs.Err()
}

type LoginResponse struct {
	Message   string    `json:"message"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RegisterResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}
