package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles. Values match the database
// representation; unknown input is rejected at the boundary rather than
// coerced.
type Role string

const (
	RolePatient       Role = "PATIENT"
	RoleDonor         Role = "DONOR"
	RoleHospitalAdmin Role = "HOSPITAL_ADMIN"
	RoleDoctor        Role = "DOCTOR"
)

// ParseRole maps the public registration form of a role ("patient", "donor",
// "hospital", "doctor") to the enumeration. The hospital admin role is
// spelled "hospital" on the wire.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "patient":
		return RolePatient, true
	case "donor":
		return RoleDonor, true
	case "hospital":
		return RoleHospitalAdmin, true
	case "doctor":
		return RoleDoctor, true
	default:
		return "", false
	}
}

// Public returns the wire form used in API responses, the inverse of
// ParseRole.
func (r Role) Public() string {
	if r == RoleHospitalAdmin {
		return "hospital"
	}
	return strings.ToLower(string(r))
}

// User maps to the users table.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"-"`
	City         *string   `db:"city" json:"city,omitempty"`
	AddressLine  *string   `db:"address_line" json:"address_line,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// PublicUser is the user shape returned by the auth endpoints.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role.Public(),
	}
}
