package user

import (
	"context"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	// Create returns ErrUsernameExists when the username is taken.
	Create(ctx context.Context, newUser User) (User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}
