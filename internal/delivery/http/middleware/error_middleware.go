package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"staffing-site-backend/internal/delivery/http/response"
	"staffing-site-backend/internal/domain"
	"staffing-site-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error
func ErrorHandler(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString("RequestID")

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			response.ValidationError(c, http.StatusBadRequest, "Invalid form data", validationErr.Fields)
			return
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				log.Error(appErr.Message, "error", appErr.Err, "request_id", requestID)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// Never expose internal error details to clients
		log.Error("Internal Server Error", "error", err, "request_id", requestID)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}
