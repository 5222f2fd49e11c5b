package domain

import (
	"errors"
	"time"
)

// Roles form a closed set; every protected route names the roles it accepts.
const (
	RoleAdmin  = "ADMIN"
	RoleSDR    = "SDR"
	RoleClient = "CLIENT"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// ValidRole reports whether role is one of the known role constants.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSDR, RoleClient:
		return true
	}
	return false
}

// User models an authenticated actor. PasswordEnc holds a reversibly
// encrypted copy of the password so an admin can recover credentials during
// client onboarding; neither credential field ever appears in JSON output.
type User struct {
	ID           string    `json:"id" bson:"-"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	PasswordEnc  string    `json:"-" bson:"passwordEnc"`
	Role         string    `json:"role" bson:"role"`
	IsActive     bool      `json:"isActive" bson:"isActive"`
	ClientID     string    `json:"clientId,omitempty" bson:"clientId,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
