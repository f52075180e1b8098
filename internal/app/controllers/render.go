package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studentdesk/internal/app/models"
	"studentdesk/internal/middleware"
	"studentdesk/internal/pkg/logger"
	"studentdesk/internal/pkg/session"
)

// Renderer renders HTML pages and persists session changes. Every page gets
// the drained flash notices, the per-session CSRF token and the identity
// fields templates rely on; the session cookie is written before the
// response body.
type Renderer struct {
	sessions *session.Manager
}

// NewRenderer creates a new Renderer
func NewRenderer(sessions *session.Manager) *Renderer {
	return &Renderer{sessions: sessions}
}

// HTML renders a template with the shared view context merged in.
func (r *Renderer) HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	sess := middleware.GetSession(c)
	data["Flashes"] = sess.TakeFlashes()
	data["CSRFToken"] = sess.CSRFToken()
	data["LoggedIn"] = sess.IsAuthenticated()
	data["CurrentUser"] = sess.Username()
	data["IsAdmin"] = sess.Role() == string(models.RoleAdmin)

	r.save(c, sess)
	c.HTML(status, name, data)
}

// Redirect persists the session and redirects.
func (r *Renderer) Redirect(c *gin.Context, location string) {
	r.save(c, middleware.GetSession(c))
	c.Redirect(http.StatusFound, location)
}

func (r *Renderer) save(c *gin.Context, sess *session.Session) {
	if err := r.sessions.Save(c.Writer, sess); err != nil {
		logger.Error().Err(err).Msg("Failed to save session")
	}
}

// safeNextPath returns the post-login redirect target when it is a local
// absolute path, guarding against open redirects.
func safeNextPath(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return ""
}
