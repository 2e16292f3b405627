package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/guestbook-hq/guestbook-backend/logger"
)

// RequestLogger logs each completed request through the structured logger
// instead of gin's plain-text writer. Severity follows the response status.
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	if log == nil {
		log = logger.GetLogger()
	}
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey),
		}
		switch {
		case c.Writer.Status() >= 500:
			log.Errorw("Request failed", fields...)
		case c.Writer.Status() >= 400:
			log.Warnw("Request rejected", fields...)
		default:
			log.Infow("Request completed", fields...)
		}
	}
}
