package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error

	// EnsureAdmin creates the initial administrator when no user exists yet.
	EnsureAdmin(ctx context.Context, username, password string) error
}
