package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studentdesk/internal/app/models"
	"studentdesk/internal/pkg/apperrors"
	"studentdesk/internal/pkg/dberrors"
)

// Unique constraint names from migrations/001_init.sql.
const (
	studentIDConstraint = "students_student_id_key"
	emailConstraint     = "students_email_key"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// translateUniqueViolation maps storage-level unique violations onto
// field-specific domain errors.
func translateUniqueViolation(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, studentIDConstraint):
		return apperrors.ErrStudentIDAlreadyExists
	case dberrors.IsDuplicateConstraintError(err, emailConstraint):
		return apperrors.ErrEmailAlreadyExists
	default:
		return err
	}
}

// Create inserts a new student and fills in the assigned ID and creation time.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (student_id, name, department, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		student.StudentID,
		student.Name,
		student.Department,
		student.Email,
		student.Phone,
	).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return translateUniqueViolation(err)
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by internal ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, student_id, name, department, email, phone, created_at
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.StudentID,
		&student.Name,
		&student.Department,
		&student.Email,
		&student.Phone,
		&student.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// Search retrieves students matching a free-text query across name,
// student ID, department and email (case-insensitive substring, OR
// semantics), newest first. An empty query returns all students.
func (r *StudentRepository) Search(ctx context.Context, q string) ([]*models.Student, error) {
	baseQuery := `
		SELECT id, student_id, name, department, email, phone, created_at
		FROM students
	`

	var rows pgx.Rows
	var err error
	if q != "" {
		like := "%" + q + "%"
		rows, err = r.db.Query(ctx, baseQuery+`
			WHERE name ILIKE $1 OR student_id ILIKE $1 OR department ILIKE $1 OR email ILIKE $1
			ORDER BY created_at DESC, id DESC`, like)
	} else {
		rows, err = r.db.Query(ctx, baseQuery+`ORDER BY created_at DESC, id DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("error searching students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.StudentID,
			&student.Name,
			&student.Department,
			&student.Email,
			&student.Phone,
			&student.CreatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// StudentIDExistsExcept checks whether another record already uses the given
// student ID, excluding the record with the given internal ID so that no-op
// edits succeed.
func (r *StudentRepository) StudentIDExistsExcept(ctx context.Context, studentID string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE student_id = $1 AND id != $2)`,
		studentID, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student ID uniqueness: %w", err)
	}

	return exists, nil
}

// EmailExistsExcept checks whether another record already uses the given
// email, excluding the record with the given internal ID.
func (r *StudentRepository) EmailExistsExcept(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE email = $1 AND id != $2)`,
		email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email uniqueness: %w", err)
	}

	return exists, nil
}

// Update updates a student record in place
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET student_id = $1, name = $2, department = $3, email = $4, phone = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.StudentID,
		student.Name,
		student.Department,
		student.Email,
		student.Phone,
		student.ID,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return translateUniqueViolation(err)
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student by internal ID. Deleting an absent record is not
// an error.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	return nil
}
