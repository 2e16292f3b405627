// Package handlers contains the gin HTTP handlers for the guestbook API.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/guestbook-hq/guestbook-backend/errors"
)

// bindJSONOrError binds the JSON request body and records a validation error
// when binding fails. Callers return immediately on false.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return false
	}
	return true
}

// isValidUUID reports whether s parses as a UUID.
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// entryIDOrError extracts and validates the :id path parameter.
func entryIDOrError(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if id == "" || !isValidUUID(id) {
		_ = c.Error(apperrors.ValidationFailed("validation_failed", "valid entry ID is required"))
		return "", false
	}
	return id, true
}
