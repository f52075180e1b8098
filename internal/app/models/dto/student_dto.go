package dto

// StudentForm carries the raw student form fields as submitted. Values are
// trimmed and validated by the student service before anything touches
// storage.
type StudentForm struct {
	Name       string `form:"name"`
	StudentID  string `form:"student_id"`
	Department string `form:"department"`
	Email      string `form:"email"`
	Phone      string `form:"phone"`
}

// StudentRecord is a validated, normalized student submission.
type StudentRecord struct {
	Name       string
	StudentID  string
	Department string
	Email      string
	Phone      string
}
