package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guestbook-hq/guestbook-backend/config"
	apperrors "github.com/guestbook-hq/guestbook-backend/errors"
	"github.com/guestbook-hq/guestbook-backend/types"
	"github.com/guestbook-hq/guestbook-backend/upload"
)

// UploadHandler receives temporary file uploads for guestbook submissions.
// Files accepted here are stashed, not published; they become visible only
// when an accepted submission promotes them.
type UploadHandler struct {
	guard  *upload.Guard
	policy config.ValidationPolicy
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(guard *upload.Guard, policy config.ValidationPolicy) *UploadHandler {
	return &UploadHandler{guard: guard, policy: policy}
}

// maxBodyBytes is the request-body ceiling: the larger attachment cap plus
// headroom for the multipart envelope.
func (h *UploadHandler) maxBodyBytes() int64 {
	limit := h.policy.AvatarMaxBytes
	if h.policy.FeedbackImageMaxBytes > limit {
		limit = h.policy.FeedbackImageMaxBytes
	}
	return limit + 1024*1024
}

// UploadFile godoc
// @Summary      Upload a file for a pending submission
// @Description  Accepts a multipart upload, checks extension, size, and sniffed content type, and stashes it under a temporary reference
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        field  formData  string  true  "Attachment role: avatar or feedback_image"
// @Param        file   formData  file    true  "Image file"
// @Success      201    {object}  types.UploadedFile
// @Failure      400    {object}  types.ErrorResponse
// @Failure      500    {object}  types.ErrorResponse
// @Router       /uploads [post]
func (h *UploadHandler) UploadFile(c *gin.Context) {
	field := types.UploadField(c.PostForm("field"))
	if !field.Valid() {
		_ = c.Error(apperrors.ValidationFailed("validation_failed", "field must be avatar or feedback_image"))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(apperrors.ValidationFailed("missing_file", "file field is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		_ = c.Error(apperrors.ValidationFailed("invalid_file", "failed to open uploaded file"))
		return
	}
	defer func() { _ = file.Close() }()

	stashed, outcome, err := h.guard.Receive(c.Request.Context(), field, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ServerError, "failed to store upload"))
		return
	}
	if !outcome.OK {
		_ = c.Error(apperrors.ValidationFailed(outcome.Message, ""))
		return
	}

	c.JSON(http.StatusCreated, stashed)
}
