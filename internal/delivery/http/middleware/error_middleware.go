package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-analyzer-backend/internal/delivery/http/response"
	"resume-analyzer-backend/pkg/apperror"
	"resume-analyzer-backend/pkg/logger"
	"resume-analyzer-backend/pkg/security"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString(requestIDKey)

		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
			logger.Log.Info("Request rejected",
				"request_id", requestID,
				"path", c.FullPath(),
				"status", appErr.Code,
				"message", appErr.Message,
				"cause", appErr.Err,
			)
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		// SECURITY: Never expose internal error details to clients.
		logger.Log.Error("Request failed",
			"request_id", requestID,
			"path", c.FullPath(),
			"error", err,
		)

		if appErr != nil {
			// 5xx AppErrors carry a message written for clients
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
			Event:     security.EventServerError,
			IP:        c.ClientIP(),
			RequestID: requestID,
			Details:   map[string]interface{}{"path": c.FullPath()},
		})
		internal := apperror.Internal(err)
		response.Error(c, internal.Code, internal.Message, nil)
	}
}
