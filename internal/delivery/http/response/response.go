package response

import (
	"staffing-site-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ID        string              `json:"id,omitempty"`
	Data      interface{}         `json:"data,omitempty"`
	Errors    []domain.FieldError `json:"errors,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Created sends a success response carrying the identifier of a stored record
func Created(c *gin.Context, code int, message, id string) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		ID:        id,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		RequestID: requestID(c),
	})
}

// ValidationError sends a 400 listing every failing field
func ValidationError(c *gin.Context, code int, message string, fields []domain.FieldError) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Errors:    fields,
		RequestID: requestID(c),
	})
}
