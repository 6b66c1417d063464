package controllers

import (
	"time"

	"github.com/flowers-delivery/app/responses"
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "request_id"

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, responses.ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: c.GetString(RequestIDKey),
	})
}

func success(message string, data interface{}) responses.SuccessResponse {
	return responses.SuccessResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
