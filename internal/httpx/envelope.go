// Package httpx carries the uniform response envelope every endpoint
// and middleware writes, success or failure.
package httpx

import (
	"github.com/gin-gonic/gin"

	"imagegram/api/internal/apperr"
)

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Error   any    `json:"error"`
}

func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail classifies the error and writes the matching status and envelope.
func Fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	c.JSON(kind.HTTPStatus(), Envelope{
		Success: false,
		Message: apperr.MessageOf(err),
		Error:   kind.String(),
	})
}

// Abort writes a failure envelope and stops the handler chain.
func Abort(c *gin.Context, status int, message string, errCode string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Message: message,
		Error:   errCode,
	})
}
