package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	domainerrors "adlicense.backend/internal/domain/errors"
)

// Body is the envelope every endpoint returns
type Body struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Flag    string      `json:"flag,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Body{Success: true, Data: data})
}

// SuccessWithMessage sends a success response with a human-readable note
func SuccessWithMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Body{Success: true, Message: message, Data: data})
}

// Error sends an error response. Non-AppError values are masked as a
// generic internal error so database details never reach the client.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, Body{
		Success: false,
		Message: appErr.Message,
		Flag:    appErr.Flag,
	})
}
