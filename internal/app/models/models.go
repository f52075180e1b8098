package models

// RoleType defines the user role type
type RoleType string

const (
	// RoleAdmin may manage user accounts in addition to student records.
	RoleAdmin RoleType = "ADMIN"
	// RoleStaff may manage student records only.
	RoleStaff RoleType = "STAFF"
)

// Valid reports whether the role is a known value.
func (r RoleType) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}
