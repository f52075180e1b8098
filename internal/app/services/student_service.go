package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"studentdesk/internal/app/models"
	"studentdesk/internal/app/models/dto"
	"studentdesk/internal/pkg/apperrors"
	"studentdesk/internal/pkg/helpers"
	"studentdesk/internal/pkg/validation"
)

// studentStore is the student persistence surface the student service relies on.
type studentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Search(ctx context.Context, q string) ([]*models.Student, error)
	StudentIDExistsExcept(ctx context.Context, studentID string, excludeID int64) (bool, error)
	EmailExistsExcept(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// StudentService handles student record operations.
type StudentService interface {
	// List returns students matching an optional free-text query, newest
	// first.
	List(ctx context.Context, query string) ([]*models.Student, error)

	// Get fetches a student by internal ID.
	Get(ctx context.Context, id int64) (*models.Student, error)

	// Create validates a submission and inserts a new record. Returns
	// ValidationErrors for syntactic problems and field-specific conflict
	// errors from apperrors for uniqueness violations.
	Create(ctx context.Context, form dto.StudentForm) (*models.Student, error)

	// Update validates a submission and updates the record in place.
	// Uniqueness is re-checked excluding the record itself so a no-op
	// edit succeeds.
	Update(ctx context.Context, id int64, form dto.StudentForm) (*models.Student, error)

	// Delete removes a student by internal ID; deleting an absent record
	// is not an error.
	Delete(ctx context.Context, id int64) error
}

type studentService struct {
	studentRepo studentStore
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo studentStore, logger zerolog.Logger) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// ValidateStudentForm trims and validates raw form fields. It returns the
// normalized record together with ordered human-readable messages; the
// record is usable only when the message list is empty. Validation is purely
// syntactic, uniqueness is checked against storage separately.
func ValidateStudentForm(form dto.StudentForm) (dto.StudentRecord, ValidationErrors) {
	record := dto.StudentRecord{
		Name:       strings.TrimSpace(form.Name),
		StudentID:  strings.TrimSpace(form.StudentID),
		Department: strings.TrimSpace(form.Department),
		Email:      strings.TrimSpace(form.Email),
		Phone:      strings.TrimSpace(form.Phone),
	}

	var errs ValidationErrors
	if record.Name == "" {
		errs = append(errs, "Name is required.")
	}
	if record.StudentID == "" {
		errs = append(errs, "Student ID is required.")
	}
	if record.Department == "" {
		errs = append(errs, "Department is required.")
	}
	if !validation.NewStringValidation(record.Email).
		WithRequired(false).
		WithPattern(validation.CompiledPatterns.Email).
		Validate() {
		errs = append(errs, "Invalid email format.")
	}
	if !validation.NewStringValidation(record.Phone).
		WithRequired(false).
		WithPattern(validation.CompiledPatterns.Phone).
		Validate() {
		errs = append(errs, "Phone should contain digits, spaces, '+' or '-' only.")
	}

	return record, errs
}

// List implements StudentService.
func (s *studentService) List(ctx context.Context, query string) ([]*models.Student, error) {
	return s.studentRepo.Search(ctx, query)
}

// Get implements StudentService.
func (s *studentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// Create implements StudentService.
func (s *studentService) Create(ctx context.Context, form dto.StudentForm) (*models.Student, error) {
	record, errs := ValidateStudentForm(form)
	if len(errs) > 0 {
		return nil, errs
	}

	student := &models.Student{
		StudentID:  record.StudentID,
		Name:       record.Name,
		Department: record.Department,
		Email:      helpers.NullableString(record.Email),
		Phone:      helpers.NullableString(record.Phone),
	}

	// The unique indexes decide; conflicts come back as field-specific
	// errors from the repository.
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", student.ID).Str("studentId", student.StudentID).Msg("Student created")
	return student, nil
}

// Update implements StudentService.
func (s *studentService) Update(ctx context.Context, id int64, form dto.StudentForm) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	record, errs := ValidateStudentForm(form)
	if len(errs) > 0 {
		return nil, errs
	}

	// Re-check uniqueness excluding this record so keeping the current
	// student ID or email is never reported as a conflict.
	exists, err := s.studentRepo.StudentIDExistsExcept(ctx, record.StudentID, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrStudentIDAlreadyExists
	}

	if record.Email != "" {
		exists, err = s.studentRepo.EmailExistsExcept(ctx, record.Email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}

	student.StudentID = record.StudentID
	student.Name = record.Name
	student.Department = record.Department
	student.Email = helpers.NullableString(record.Email)
	student.Phone = helpers.NullableString(record.Phone)

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", student.ID).Str("studentId", student.StudentID).Msg("Student updated")
	return student, nil
}

// Delete implements StudentService.
func (s *studentService) Delete(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("id", id).Msg("Student deleted")
	return nil
}
