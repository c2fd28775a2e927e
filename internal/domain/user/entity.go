package user

import "time"

// User is an administrator account. Every authenticated user has full access.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
