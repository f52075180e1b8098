package models

import (
	"time"

	"studentdesk/internal/pkg/helpers"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID         int64     `json:"id" db:"id"`                  // Internal record identifier
	StudentID  string    `json:"studentId" db:"student_id"`   // Business key, unique
	Name       string    `json:"name" db:"name"`              // Full name
	Department string    `json:"department" db:"department"`  // Department name
	Email      *string   `json:"email,omitempty" db:"email"`  // Optional, unique when present
	Phone      *string   `json:"phone,omitempty" db:"phone"`  // Optional contact number
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`   // Timestamp when the record was created
}

// EmailValue returns the email as a plain string for templates.
func (s *Student) EmailValue() string {
	return helpers.StringValue(s.Email)
}

// PhoneValue returns the phone as a plain string for templates.
func (s *Student) PhoneValue() string {
	return helpers.StringValue(s.Phone)
}
