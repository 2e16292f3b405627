package logger

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// sensitiveHeaders lists request headers that must never reach the logs.
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-csrf-token":  true,
}

// LogHTTPError logs an error that occurred while serving an HTTP request,
// attaching request metadata (path, method, client IP, request ID).
func LogHTTPError(c *gin.Context, err error, statusCode int, message string) {
	log := GetLogger()

	requestID, _ := c.Get("request_id")

	log.Errorw(message,
		"error", err,
		"status_code", statusCode,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"client_ip", c.ClientIP(),
		"request_id", requestID,
		"headers", filterSensitiveHeaders(c.Request.Header),
	)
}

// filterSensitiveHeaders removes sensitive information from headers before logging.
func filterSensitiveHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string, len(headers))
	for name, values := range headers {
		if sensitiveHeaders[strings.ToLower(name)] {
			filtered[name] = "[REDACTED]"
			continue
		}
		filtered[name] = strings.Join(values, ", ")
	}
	return filtered
}
