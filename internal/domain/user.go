package domain

import "time"

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
	UserStatusDeleted   UserStatus = "deleted"
)

// CanAuthenticate reports whether the account may pass the auth boundary.
// Suspension and bans take effect immediately, regardless of token expiry.
func (s UserStatus) CanAuthenticate() bool {
	return s == UserStatusActive
}

// User is the account aggregate. Pets and adoption listings hang off it.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	IsBreeder    bool
	IsAdmin      bool
	Status       UserStatus
	IsDeleted    bool
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
