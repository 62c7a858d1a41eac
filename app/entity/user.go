package entity

import (
	"database/sql"
	"time"
)

type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role is a named permission node. ParentRoleID makes roles form a forest;
// nothing in the schema prevents a cycle, so walkers must guard against one.
type Role struct {
	ID           uint64
	Name         string
	ParentRoleID sql.NullInt64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRole struct {
	UserID    uint64
	RoleID    uint64
	CreatedAt time.Time
}

// PasswordResetToken is valid for consumption iff active, unused and unexpired.
type PasswordResetToken struct {
	ID        uint64
	UserID    uint64
	Token     string
	ExpiresAt time.Time
	Used      bool
	Active    bool
	CreatedAt time.Time
}
