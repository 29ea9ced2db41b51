package model

// RoleInstructor grants access to calculation history.
const RoleInstructor = "instructor"

// Instructor is an account allowed to sign in and review calculations.
// Accounts come from configuration, so there is no persisted identifier.
type Instructor struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// HasRole reports whether the instructor holds the given role.
func (i Instructor) HasRole(role string) bool {
	return i.Role == role
}
