package domain

import "time"

// Role is the flat category controlling which operations a user may invoke.
type Role string

const (
	RoleJobSeeker Role = "Job Seeker"
	RoleEmployer  Role = "Employer"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer:
		return true
	}
	return false
}

// ParseRole converts the wire representation of a role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// User represents a registered account of the job board.
type User struct {
	ID    string
	Name  string
	Email string
	Phone string
	Role  Role
	// Password holds a plaintext password waiting to be hashed. It is
	// cleared once PasswordHash has been derived from it.
	Password     string
	PasswordHash string
	CreatedAt    time.Time
}
