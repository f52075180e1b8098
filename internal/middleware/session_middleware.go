package middleware

import (
	"github.com/gin-gonic/gin"

	"studentdesk/internal/pkg/session"
)

// sessionKey is the gin context key holding the decoded session.
const sessionKey = "session"

// Sessions decodes the session cookie on every request and stores the
// resulting session in the request context. Handlers mutate it and persist
// it through the renderer before writing the response.
func Sessions(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionKey, manager.Load(c.Request))
		c.Next()
	}
}

// GetSession returns the request's session. The Sessions middleware must
// have run; routes registered through the router always satisfy that.
func GetSession(c *gin.Context) *session.Session {
	if value, exists := c.Get(sessionKey); exists {
		if sess, ok := value.(*session.Session); ok {
			return sess
		}
	}
	// A route outside the session middleware gets a throwaway session.
	return session.New()
}
