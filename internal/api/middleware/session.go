package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NetLive5/weblarek/internal/session"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "weblarek_session"

	sessionContextKey = "session"
)

// SessionMiddleware resolves the storefront session from the X-Session-ID header
// or, failing that, the session cookie
func SessionMiddleware(store *session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id, _ = c.Cookie(SessionCookie)
		}
		if id == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session required: create one with POST /v1/sessions"})
			c.Abort()
			return
		}

		sess, err := store.Get(id)
		if err != nil {
			logger.Debug("Unknown session", zap.String("session_id", id))
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
			c.Abort()
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// GetSessionFromContext retrieves the session resolved by SessionMiddleware
func GetSessionFromContext(c *gin.Context) (*session.Session, bool) {
	val, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	sess, ok := val.(*session.Session)
	return sess, ok
}
