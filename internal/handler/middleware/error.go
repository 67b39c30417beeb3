package middleware

import (
	"log/slog"
	"net/http"

	"envelope-ledger/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		resp, cause := httperr.Last(c)
		if cause != nil && resp.Status >= http.StatusInternalServerError {
			// the client only sees the generic message
			slog.Error("ledger request failed",
				"request_id", GetRequestID(c),
				"route", c.FullPath(),
				"status", resp.Status,
				"error", cause)
		}

		if c.Writer.Written() {
			return
		}
		if cause != nil {
			c.JSON(resp.Status, resp)
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic",
					"error", err,
					"request_id", GetRequestID(c),
					"method", c.Request.Method,
					"route", c.FullPath())

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
