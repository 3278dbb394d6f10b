package domain

import "github.com/google/uuid"

// UserRole enumerates the account roles.
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

// User is the stored record for an account. Email is the natural key used to
// detect duplicate creation attempts. The password is held only as a bcrypt
// hash and never appears in read-facing representations.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         UserRole
	IsActive     bool
	FirstName    *string
	LastName     *string
}
