package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"studentdesk/internal/app/models"
	"studentdesk/internal/pkg/apperrors"
)

// AuthMiddleware gates routes behind the login session.
type AuthMiddleware struct{}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

// SessionRequired redirects anonymous clients to the login page, preserving
// the originally requested path for the post-login redirect.
func (m *AuthMiddleware) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if !sess.IsAuthenticated() {
			next := url.QueryEscape(c.Request.URL.Path)
			c.Redirect(http.StatusFound, "/login?next="+next)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RoleRequired rejects sessions whose role does not match. It assumes
// SessionRequired already ran on the route.
func (m *AuthMiddleware) RoleRequired(role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess.Role() != string(role) {
			HandleError(c, apperrors.NewForbiddenError("insufficient role"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// CSRFGuard rejects state-changing submissions whose form token does not
// match the per-session token. The mutation is never processed on a
// mismatch.
func (m *AuthMiddleware) CSRFGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost {
			sess := GetSession(c)
			if !sess.ValidateCSRF(c.PostForm("csrf_token")) {
				HandleError(c, apperrors.ErrCSRFTokenInvalid)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
