package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Staff roles carried on users and in access tokens
const (
	RoleAdmin        = "admin"
	RoleStaff        = "staff"
	RoleHousekeeping = "housekeeping"
)

// User is a staff account
type User struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	Username     string         `json:"username" db:"username"`
	Name         string         `json:"name" db:"name"`
	Email        string         `json:"email" db:"email"`
	Phone        *string        `json:"phone,omitempty" db:"phone"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Roles        pq.StringArray `json:"roles" db:"roles"`
	IsActive     bool           `json:"is_active" db:"is_active"`
	IsDeleted    bool           `json:"-" db:"is_deleted"`
	CreatedBy    string         `json:"created_by" db:"created_by"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	ModifiedBy   *string        `json:"modified_by,omitempty" db:"modified_by"`
	ModifiedAt   *time.Time     `json:"modified_at,omitempty" db:"modified_at"`
}

// HasRole checks if user has a specific role
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50"`
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Phone    *string  `json:"phone"`
	Password string   `json:"password" binding:"required,min=8"`
	Roles    []string `json:"roles" binding:"dive,oneof=admin staff housekeeping"`
}

// UpdateUserRequest is a partial user update
type UpdateUserRequest struct {
	Name     *string  `json:"name"`
	Email    *string  `json:"email" binding:"omitempty,email"`
	Phone    *string  `json:"phone"`
	Password *string  `json:"password" binding:"omitempty,min=8"`
	Roles    []string `json:"roles" binding:"omitempty,dive,oneof=admin staff housekeeping"`
	IsActive *bool    `json:"is_active"`
}
