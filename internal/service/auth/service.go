package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	clock clock.Clock
	user.UserRepository
	jwt.Service
}

func NewAuthService(clk clock.Clock, userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		clock:          clk,
		UserRepository: userRepository,
		Service:        jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.LoginResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.UserRepository.GetByUsername(ctx, loginReq.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Username)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.LoginResponse{
		Message:   "Login successful",
		UserID:    userData.ID,
		Username:  userData.Username,
		Token:     token,
		ExpiresAt: time.Unix(expiresAt, 0).In(clock.Location()),
	}, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, registerReq auth.RegisterRequest) (auth.RegisterResponse, error) {
	if err := registerReq.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	if _, err := a.UserRepository.GetByUsername(ctx, registerReq.Username); err == nil {
		return auth.RegisterResponse{}, auth.ErrUsernameTaken
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return auth.RegisterResponse{}, fmt.Errorf("failed to check username: %w", err)
	}

	created, err := a.createUser(ctx, registerReq.Username, registerReq.Password)
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	return auth.RegisterResponse{UserID: created.ID, Username: created.Username}, nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, userID int64, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrInvalidToken
		}
		return fmt.Errorf("failed to get user by ID: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hashed, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := a.UserRepository.UpdatePassword(ctx, userID, hashed); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("Password changed", "user_id", userID)
	return nil
}

// EnsureAdmin implements auth.AuthService.
func (a *AuthServiceImpl) EnsureAdmin(ctx context.Context, username, password string) error {
	count, err := a.UserRepository.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	created, err := a.createUser(ctx, username, password)
	if err != nil {
		// Another instance seeded it first.
		if errors.Is(err, auth.ErrUsernameTaken) {
			return nil
		}
		return err
	}

	slog.Info("Seeded default administrator", "user_id", created.ID, "username", created.Username)
	return nil
}

func (a *AuthServiceImpl) createUser(ctx context.Context, username, password string) (user.User, error) {
	hashed, err := a.hashPassword(password)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.UserRepository.Create(ctx, user.User{
		Username:     username,
		PasswordHash: hashed,
		CreatedAt:    a.clock.Now(),
	})
	if err != nil {
		if errors.Is(err, user.ErrUsernameExists) {
			return user.User{}, auth.ErrUsernameTaken
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}
