package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studentdesk/internal/pkg/apperrors"
	"studentdesk/internal/pkg/logger"
)

// HandleError renders the status page for errors no handler translated into
// a flash notice. Anything unexpected is reported generically and logged.
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.HTML(http.StatusForbidden, "403.html", gin.H{})
	case errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrCSRFTokenInvalid):
		c.HTML(http.StatusBadRequest, "400.html", gin.H{})
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
	}
}
