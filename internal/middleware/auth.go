package middleware

import (
	"myapp_backend/internal/auth"
	"myapp_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionAuth requires a session token, read from the session cookie or an
// Authorization: Bearer header, and stores the resolved session on the
// context. A session whose email matches no user passes through without a
// userId; handlers that are keyed by user must reject it themselves.
func SessionAuth(authService auth.Service, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := common.GetBearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(cookieName); err == nil {
				token = cookie
			}
		}
		if token == "" {
			logger.Debug("No session token on request", zap.String("path", c.Request.URL.Path))
			common.RespondWithError(c, common.ErrUnauthorized)
			return
		}

		session, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			common.RespondWithError(c, err)
			return
		}

		common.SetSession(c, session)
		logger.Debug("Session resolved",
			zap.String("email", session.Email),
			zap.String("userId", session.UserID),
		)
		c.Next()
	}
}

// RequireUser rejects sessions that could not be tied to a stored user.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if common.GetUserIDFromContext(c) == "" {
			common.RespondWithError(c, common.ErrUnauthorized)
			return
		}
		c.Next()
	}
}
