package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"netwatch/internal/shared/constants"
)

// RequestID tags every request with an X-Request-ID, generating one when
// the client did not supply its own.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request.Header.Set(constants.HeaderXRequestID, requestID)
		}

		c.Header(constants.HeaderXRequestID, requestID)
		c.Next()
	}
}
