package domain

import (
	"errors"
	"time"
)

const (
	RoleVoter      = "voter"
	RoleStaff      = "staff"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
	RoleMonitor    = "monitor"
)

var ErrVoterNotFound = errors.New("voter not found")
var ErrVoterExists = errors.New("voter already exists")
var ErrInvalidCredentials = errors.New("invalid login credentials")
var ErrForbidden = errors.New("access forbidden")

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleVoter, RoleStaff, RoleAdmin, RoleSuperAdmin, RoleMonitor:
		return true
	}
	return false
}

// CanValidate reports whether the role is allowed to perform credential validation.
func CanValidate(role string) bool {
	switch role {
	case RoleStaff, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Voter models a registered account. Staff and admin accounts share the same
// record type, distinguished by role; HasVoted is meaningful for voters only.
type Voter struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	NIM          string    `json:"nim" bson:"nim"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	HasVoted     bool      `json:"has_voted" bson:"has_voted"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
