package common

import (
	"strings"

	"myapp_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetBearerToken retrieves the token string from the Authorization header.
// Returns an empty string if not found.
func GetBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return ""
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
		return ""
	}
	return parts[1]
}

// SetSession stores the resolved session on the gin context.
func SetSession(c *gin.Context, session *shared.Session) {
	c.Set(SessionKey, session)
	c.Set(UserEmailKey, session.Email)
	if session.UserID != "" {
		c.Set(UserIDKey, session.UserID)
	}
}

// GetSessionFromContext returns the session set by the auth middleware, or nil.
func GetSessionFromContext(c *gin.Context) *shared.Session {
	val, exists := c.Get(SessionKey)
	if !exists {
		return nil
	}
	session, ok := val.(*shared.Session)
	if !ok {
		return nil
	}
	return session
}

// GetUserIDFromContext retrieves the resolved userId from the Gin context.
// Returns an empty string when the session could not be tied to a user.
func GetUserIDFromContext(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetLoggerFromContext returns the request logger, or a no-op logger.
func GetLoggerFromContext(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.NewNop()
}
