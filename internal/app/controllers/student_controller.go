package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"studentdesk/internal/app/models/dto"
	"studentdesk/internal/app/services"
	"studentdesk/internal/middleware"
	"studentdesk/internal/pkg/apperrors"
)

// StudentController handles the student record pages.
type StudentController struct {
	studentService services.StudentService
	render         *Renderer
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, render *Renderer, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		render:         render,
		logger:         logger,
	}
}

// parseID reads the :id route parameter. A non-numeric ID behaves like a
// missing record.
func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleError(ctx, apperrors.NewResourceNotFoundError("invalid student id"))
		return 0, false
	}
	return id, true
}

// flashConflict translates field-specific uniqueness conflicts into flash
// notices. Returns false when the error is something else.
func flashConflict(ctx *gin.Context, err error) bool {
	sess := middleware.GetSession(ctx)
	switch {
	case errors.Is(err, apperrors.ErrStudentIDAlreadyExists):
		sess.AddFlash("Student ID already exists.", "danger")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		sess.AddFlash("Email already exists.", "danger")
	default:
		return false
	}
	return true
}

// flashValidation queues each validation message. Returns false when the
// error is not a validation failure.
func flashValidation(ctx *gin.Context, err error) bool {
	var validationErrs services.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return false
	}

	sess := middleware.GetSession(ctx)
	for _, msg := range validationErrs {
		sess.AddFlash(msg, "danger")
	}
	return true
}

// List renders the student list, optionally filtered by a free-text query.
// The query is trimmed once here; the service and the template both see the
// trimmed value.
func (c *StudentController) List(ctx *gin.Context) {
	query := strings.TrimSpace(ctx.Query("q"))

	students, err := c.studentService.List(ctx.Request.Context(), query)
	if err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	c.render.HTML(ctx, http.StatusOK, "students_index.html", gin.H{
		"Students": students,
		"Query":    query,
	})
}

// ShowCreate renders the empty student form.
func (c *StudentController) ShowCreate(ctx *gin.Context) {
	c.render.HTML(ctx, http.StatusOK, "students_new.html", gin.H{
		"Form": dto.StudentForm{},
	})
}

// Create handles the new-student form submission.
func (c *StudentController) Create(ctx *gin.Context) {
	var form dto.StudentForm
	if err := ctx.ShouldBind(&form); err != nil {
		middleware.HandleError(ctx, apperrors.NewBadRequestError("malformed form submission"))
		return
	}

	_, err := c.studentService.Create(ctx.Request.Context(), form)
	if err != nil {
		if flashValidation(ctx, err) || flashConflict(ctx, err) {
			// Re-render with the submitted values pre-filled.
			c.render.HTML(ctx, http.StatusOK, "students_new.html", gin.H{
				"Form": form,
			})
			return
		}
		middleware.HandleError(ctx, err)
		return
	}

	middleware.GetSession(ctx).AddFlash("Student added.", "success")
	c.render.Redirect(ctx, "/students")
}

// View renders a single student record.
func (c *StudentController) View(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	c.render.HTML(ctx, http.StatusOK, "students_view.html", gin.H{
		"Student": student,
	})
}

// ShowEdit renders the edit form pre-filled with the current record.
func (c *StudentController) ShowEdit(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	c.render.HTML(ctx, http.StatusOK, "students_edit.html", gin.H{
		"Student": student,
		"Form": dto.StudentForm{
			Name:       student.Name,
			StudentID:  student.StudentID,
			Department: student.Department,
			Email:      student.EmailValue(),
			Phone:      student.PhoneValue(),
		},
	})
}

// Edit handles the edit form submission.
func (c *StudentController) Edit(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var form dto.StudentForm
	if err := ctx.ShouldBind(&form); err != nil {
		middleware.HandleError(ctx, apperrors.NewBadRequestError("malformed form submission"))
		return
	}

	_, err := c.studentService.Update(ctx.Request.Context(), id, form)
	if err != nil {
		if flashValidation(ctx, err) || flashConflict(ctx, err) {
			student, getErr := c.studentService.Get(ctx.Request.Context(), id)
			if getErr != nil {
				middleware.HandleError(ctx, getErr)
				return
			}
			c.render.HTML(ctx, http.StatusOK, "students_edit.html", gin.H{
				"Student": student,
				"Form":    form,
			})
			return
		}
		middleware.HandleError(ctx, err)
		return
	}

	middleware.GetSession(ctx).AddFlash("Student updated.", "success")
	c.render.Redirect(ctx, "/students/"+strconv.FormatInt(id, 10))
}

// Delete removes a student record. The operation is idempotent.
func (c *StudentController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.studentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	middleware.GetSession(ctx).AddFlash("Student deleted.", "info")
	c.render.Redirect(ctx, "/students")
}
