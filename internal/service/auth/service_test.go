package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/repository/memory"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessExp = "24h"
	testSecret    = "test-secret-key-for-jwt"
)

func newService(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()
	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp)
	require.NoError(t, err)

	store := memory.NewStore()
	clk := clock.Fixed(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewAuthService(clk, store.Users(), jwtService), jwtService
}

func TestEnsureAdmin_SeedsOnce(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := newService(t)

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin123"))
	require.NoError(t, svc.EnsureAdmin(ctx, "other", "whatever1"))

	resp, err := svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Username)
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)

	token, err := jwtauth.VerifyToken(jwtService.JWTAuth(), resp.Token)
	require.NoError(t, err)
	claims := token.PrivateClaims()
	assert.Equal(t, jwt.TokenTypeAccess, claims["type"])
	assert.Equal(t, "admin", claims["username"])
	assert.EqualValues(t, resp.UserID, claims["user_id"])
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), resp.ExpiresAt, time.Minute)

	_, err = svc.Login(ctx, auth.LoginRequest{Username: "other", Password: "whatever1"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.Register(ctx, auth.RegisterRequest{Username: "hr.manager", Password: "secret99"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, auth.LoginRequest{Username: "hr.manager", Password: "secret98"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{Username: "nobody", Password: "secret99"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	resp, err := svc.Register(ctx, auth.RegisterRequest{Username: "ops_lead", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "ops_lead", resp.Username)
	assert.NotZero(t, resp.UserID)

	_, err = svc.Register(ctx, auth.RegisterRequest{Username: "ops_lead", Password: "abcdef"})
	assert.ErrorIs(t, err, auth.ErrUsernameTaken)

	_, err = svc.Register(ctx, auth.RegisterRequest{Username: "x!", Password: "123"})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "username")
	assert.Contains(t, errs.ToMap(), "password")
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	reg, err := svc.Register(ctx, auth.RegisterRequest{Username: "payroll", Password: "first-pass"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, reg.UserID, auth.ChangePasswordRequest{CurrentPassword: "wrong-pass", NewPassword: "second-pass"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, reg.UserID, auth.ChangePasswordRequest{CurrentPassword: "first-pass", NewPassword: "short"})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	require.NoError(t, svc.ChangePassword(ctx, reg.UserID, auth.ChangePasswordRequest{CurrentPassword: "first-pass", NewPassword: "second-pass"}))

	_, err = svc.Login(ctx, auth.LoginRequest{Username: "payroll", Password: "first-pass"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = svc.Login(ctx, auth.LoginRequest{Username: "payroll", Password: "second-pass"})
	assert.NoError(t, err)

	err = svc.ChangePassword(ctx, 9999, auth.ChangePasswordRequest{CurrentPassword: "x", NewPassword: "second-pass"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
