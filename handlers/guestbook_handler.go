package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/guestbook-hq/guestbook-backend/errors"
	"github.com/guestbook-hq/guestbook-backend/middleware"
	"github.com/guestbook-hq/guestbook-backend/services"
	"github.com/guestbook-hq/guestbook-backend/types"
)

// GuestbookHandler exposes the guestbook listing, submission, and moderation
// endpoints. All business rules live in the services; the handler only maps
// HTTP to service calls.
type GuestbookHandler struct {
	submissions *services.SubmissionService
	moderation  *services.ModerationService
	live        *services.LiveValidationService
}

// NewGuestbookHandler creates a new GuestbookHandler.
func NewGuestbookHandler(
	submissions *services.SubmissionService,
	moderation *services.ModerationService,
	live *services.LiveValidationService,
) *GuestbookHandler {
	return &GuestbookHandler{
		submissions: submissions,
		moderation:  moderation,
		live:        live,
	}
}

// liveFieldRequest is the payload of a live single-field check.
type liveFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// liveFileRequest is the payload of a live file check. Size is the
// client-declared byte count; the upload endpoint re-measures.
type liveFileRequest struct {
	Field    types.UploadField `json:"field" binding:"required"`
	Filename string            `json:"filename" binding:"required"`
	Size     int64             `json:"size"`
}

// confirmDeleteRequest carries the token issued by RequestDelete.
type confirmDeleteRequest struct {
	Token string `json:"token" binding:"required"`
}

// ListEntries godoc
// @Summary      List guestbook entries
// @Description  Returns all entries, newest first, plus whether the caller may moderate
// @Tags         guestbook
// @Produce      json
// @Success      200  {object}  types.EntryListResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /guestbook [get]
func (h *GuestbookHandler) ListEntries(c *gin.Context) {
	views, err := h.submissions.ListViews(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.EntryListResponse{
		Entries:     views,
		CanModerate: middleware.IsModerator(c),
	})
}

// SubmitEntry godoc
// @Summary      Submit a guestbook entry
// @Description  Validates the whole submission, promotes attached uploads, and persists the entry
// @Tags         guestbook
// @Accept       json
// @Produce      json
// @Param        body  body      types.RawSubmission  true  "Submission payload"
// @Success      201   {object}  types.SubmissionResult
// @Failure      400   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Router       /guestbook [post]
func (h *GuestbookHandler) SubmitEntry(c *gin.Context) {
	var req types.RawSubmission
	if !bindJSONOrError(c, &req) {
		return
	}

	result, err := h.submissions.Submit(c.Request.Context(), req, "")
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// UpdateEntry godoc
// @Summary      Update a guestbook entry
// @Description  Runs the edited submission through the full pipeline and overwrites the entry's fields. The id and created_at never change.
// @Tags         guestbook
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Entry ID"
// @Param        body  body      types.RawSubmission  true  "Edited submission"
// @Success      200   {object}  types.SubmissionResult
// @Failure      400   {object}  types.ErrorResponse
// @Failure      404   {object}  types.ErrorResponse
// @Router       /guestbook/{id} [put]
func (h *GuestbookHandler) UpdateEntry(c *gin.Context) {
	id, ok := entryIDOrError(c)
	if !ok {
		return
	}

	var req types.RawSubmission
	if !bindJSONOrError(c, &req) {
		return
	}

	result, err := h.submissions.Submit(c.Request.Context(), req, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEntry godoc
// @Summary      Load an entry for editing
// @Tags         moderation
// @Produce      json
// @Param        id  path      string  true  "Entry ID"
// @Success      200 {object}  types.Entry
// @Failure      404 {object}  types.ErrorResponse
// @Router       /guestbook/{id} [get]
func (h *GuestbookHandler) GetEntry(c *gin.Context) {
	id, ok := entryIDOrError(c)
	if !ok {
		return
	}

	entry, err := h.moderation.LoadForEdit(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// ValidateField godoc
// @Summary      Live-validate a single form field
// @Description  Advisory check while the user types. The submit endpoint re-validates everything.
// @Tags         validation
// @Accept       json
// @Produce      json
// @Param        body  body      liveFieldRequest  true  "Field and value"
// @Success      200   {object}  types.LiveValidationResponse
// @Failure      400   {object}  types.ErrorResponse
// @Router       /guestbook/validate/field [post]
func (h *GuestbookHandler) ValidateField(c *gin.Context) {
	var req liveFieldRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	c.JSON(http.StatusOK, types.LiveValidationResponse{
		Field:   req.Field,
		Message: h.live.CheckField(req.Field, req.Value),
	})
}

// ValidateFile godoc
// @Summary      Live-validate a file pick
// @Description  Advisory check of a file's name and declared size before it is uploaded
// @Tags         validation
// @Accept       json
// @Produce      json
// @Param        body  body      liveFileRequest  true  "Attachment role, filename, and declared size"
// @Success      200   {object}  types.LiveValidationResponse
// @Failure      400   {object}  types.ErrorResponse
// @Router       /guestbook/validate/file [post]
func (h *GuestbookHandler) ValidateFile(c *gin.Context) {
	var req liveFileRequest
	if !bindJSONOrError(c, &req) {
		return
	}
	if !req.Field.Valid() {
		_ = c.Error(apperrors.ValidationFailed("validation_failed", "field must be avatar or feedback_image"))
		return
	}

	c.JSON(http.StatusOK, types.LiveValidationResponse{
		Field:   string(req.Field),
		Message: h.live.CheckFile(req.Field, req.Filename, req.Size),
	})
}

// RequestDelete godoc
// @Summary      Start deleting an entry
// @Description  First half of the two-step delete. Nothing is deleted; the returned token must accompany the confirmation for the same entry.
// @Tags         moderation
// @Produce      json
// @Param        id  path      string  true  "Entry ID"
// @Success      200 {object}  types.PendingDelete
// @Failure      404 {object}  types.ErrorResponse
// @Router       /guestbook/{id}/delete [post]
func (h *GuestbookHandler) RequestDelete(c *gin.Context) {
	id, ok := entryIDOrError(c)
	if !ok {
		return
	}

	pending, err := h.moderation.RequestDelete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, pending)
}

// ConfirmDelete godoc
// @Summary      Confirm deleting an entry
// @Description  Deletes the entry only when the token matches the pending confirmation for this exact ID
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Entry ID"
// @Param        body  body      confirmDeleteRequest  true  "Confirmation token"
// @Success      200   {object}  types.StatusResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      404   {object}  types.ErrorResponse
// @Router       /guestbook/{id}/delete/confirm [post]
func (h *GuestbookHandler) ConfirmDelete(c *gin.Context) {
	id, ok := entryIDOrError(c)
	if !ok {
		return
	}

	var req confirmDeleteRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	if err := h.moderation.ConfirmDelete(c.Request.Context(), id, req.Token); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.StatusResponse{Status: "Entry deleted"})
}

// CancelDelete godoc
// @Summary      Cancel a pending delete
// @Description  Abandons the pending confirmation. Safe to call when nothing is pending.
// @Tags         moderation
// @Produce      json
// @Param        id  path      string  true  "Entry ID"
// @Success      200 {object}  types.StatusResponse
// @Failure      400 {object}  types.ErrorResponse
// @Router       /guestbook/{id}/delete/cancel [post]
func (h *GuestbookHandler) CancelDelete(c *gin.Context) {
	id, ok := entryIDOrError(c)
	if !ok {
		return
	}

	h.moderation.CancelDelete(id)
	c.JSON(http.StatusOK, types.StatusResponse{Status: "Delete cancelled"})
}
