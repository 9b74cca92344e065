package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"netwatch/internal/shared/errors"
)

// ErrorInfo represents error information in an API error response
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorBody is the JSON body returned for every failed request
type ErrorBody struct {
	Error ErrorInfo `json:"error"`
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{
		Error: ErrorInfo{
			Type:    "error",
			Message: message,
		},
	})
}

// ErrorResponseWithError sends an error response based on error type
func ErrorResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		c.JSON(appErr.Code, ErrorBody{
			Error: ErrorInfo{
				Type:    string(appErr.Type),
				Message: appErr.Message,
				Details: appErr.Details,
			},
		})
		return
	}

	// Do not expose internal error details to prevent information leakage
	c.JSON(http.StatusInternalServerError, ErrorBody{
		Error: ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: "Internal server error occurred",
		},
	})
}
