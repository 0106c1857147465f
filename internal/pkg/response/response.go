// internal/pkg/response/response.go
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response defines the standard API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, message string, err error, data ...interface{}) {
	ErrorWithCode(c, status, "", message, err, data...)
}

// ErrorWithCode sends an error response carrying a machine-readable code.
func ErrorWithCode(c *gin.Context, status int, code, message string, err error, data ...interface{}) {
	// Abort before writing so later handlers never run
	c.Abort()

	resp := Response{
		Success: false,
		Message: message,
		Code:    code,
	}

	if err != nil {
		resp.Error = err.Error()
	}

	if len(data) > 0 {
		resp.Data = data[0]
	}

	c.JSON(status, resp)
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, message string, err error, data ...interface{}) {
	ErrorWithCode(c, http.StatusBadRequest, "VALIDATION_ERROR", message, err, data...)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, code, message string) {
	ErrorWithCode(c, http.StatusUnauthorized, code, message, nil)
}

// Forbidden sends a 403 Forbidden response.
func Forbidden(c *gin.Context, message string, data ...interface{}) {
	ErrorWithCode(c, http.StatusForbidden, "FORBIDDEN", message, nil, data...)
}

// TooManyRequests sends a 429 response.
func TooManyRequests(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusTooManyRequests, "RATE_LIMITED", message, nil)
}
