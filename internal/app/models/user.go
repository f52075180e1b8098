package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id"`                 // Unique identifier for the user
	Username     string    `json:"username" db:"username"`     // Login name, unique
	PasswordHash string    `json:"-" db:"password_hash"`       // Salted one-way hash (excluded from JSON)
	Role         RoleType  `json:"role" db:"role"`             // User's role (ADMIN or STAFF)
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`  // Timestamp when the user was created
}
