package models

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. Authorization checks compare
// against these variants, never free-form role-name strings.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleClient        Role = "client"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleAdministrator || r == RoleClient
}

// User represents an account able to sign in to the system.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// IsAdministrator reports whether the user can manage places, categories
// and reservation lifecycle transitions.
func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

// CanActOn reports whether the user may operate on the given reservation.
// Administrators can act on any reservation; clients only on reservations
// booked under their own email address.
func (u *User) CanActOn(r *Reservation) bool {
	if u.IsAdministrator() {
		return true
	}
	return r.ClientEmail == u.Email
}

// RegisterRequest represents the request to register a client account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request to sign in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the request to refresh an access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ParseRole converts a string into a Role or fails for unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !ValidRole(r) {
		return "", fmt.Errorf("unknown role: %s", s)
	}
	return r, nil
}
