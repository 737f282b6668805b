package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondWithError aborts the request with a JSON error body.
// Errors that are not APIErrors are logged and reported as a generic 500.
func RespondWithError(c *gin.Context, err error) {
	apiErr, ok := IsAPIError(err)
	if !ok {
		GetLoggerFromContext(c).Error("Unhandled internal error being wrapped",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		apiErr = ErrInternalServer
		if gin.Mode() == gin.DebugMode {
			apiErr = ErrInternalServer.WithDetails(err.Error())
		}
	}

	c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
}

// RespondOK sends a 200 OK response with body as is.
func RespondOK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// RespondCreated sends a 201 Created response with body as is.
func RespondCreated(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}

// RespondMessage sends {"message": msg} with the given status.
func RespondMessage(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, gin.H{"message": msg})
}
