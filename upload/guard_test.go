package upload

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guestbook-hq/guestbook-backend/config"
	"github.com/guestbook-hq/guestbook-backend/internal/store/memory"
	"github.com/guestbook-hq/guestbook-backend/types"
)

const mib = 1024 * 1024

// pngBytes returns data starting with the PNG signature.
func pngBytes(size int) []byte {
	header := []byte("\x89PNG\r\n\x1a\n")
	if size < len(header) {
		size = len(header)
	}
	return append(header, make([]byte, size-len(header))...)
}

func newTestGuard(t *testing.T) (*Guard, string) {
	t.Helper()
	dir := t.TempDir()
	storage := NewLocalStorage(filepath.Join(dir, "files"), "http://localhost:8080")
	guard := NewGuard(config.DefaultValidationPolicy(), memory.NewUploadStore(), storage, filepath.Join(dir, "tmp"))
	return guard, dir
}

func TestGuard_Check(t *testing.T) {
	guard, _ := newTestGuard(t)

	tests := []struct {
		name     string
		field    types.UploadField
		filename string
		size     int64
		ok       bool
		reason   Reason
	}{
		{"png avatar within limit", types.UploadFieldAvatar, "me.png", 1 * mib, true, ""},
		{"uppercase extension", types.UploadFieldAvatar, "ME.PNG", 1 * mib, true, ""},
		{"gif rejected regardless of size", types.UploadFieldAvatar, "anim.gif", 10, false, ReasonInvalidExtension},
		{"no extension", types.UploadFieldAvatar, "noext", 10, false, ReasonInvalidExtension},
		{"avatar over 2 MiB", types.UploadFieldAvatar, "big.png", 3 * mib, false, ReasonFileTooLarge},
		{"feedback image under 5 MiB", types.UploadFieldFeedbackImage, "pic.jpeg", 3 * mib, true, ""},
		{"feedback image over 5 MiB", types.UploadFieldFeedbackImage, "pic.jpg", 6 * mib, false, ReasonFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := guard.Check(tt.field, tt.filename, tt.size)
			assert.Equal(t, tt.ok, outcome.OK)
			if !tt.ok {
				assert.Equal(t, tt.reason, outcome.Reason)
				assert.Contains(t, outcome.Message, string(tt.field))
			}
		})
	}
}

func TestGuard_Check_CarriesLimit(t *testing.T) {
	guard, _ := newTestGuard(t)

	outcome := guard.Check(types.UploadFieldAvatar, "big.png", 3*mib)
	require.False(t, outcome.OK)
	assert.Equal(t, int64(2*mib), outcome.Limit)
	assert.Contains(t, outcome.Message, "2 MB")
}

func TestGuard_CheckStashed_ChecksAttachmentField(t *testing.T) {
	guard, _ := newTestGuard(t)
	ctx := context.Background()

	// Stashed under feedback_image (5 MiB cap), large enough to break the
	// 2 MiB avatar cap.
	data := pngBytes(3 * mib)
	file, outcome, err := guard.Receive(ctx, types.UploadFieldFeedbackImage, "big.png", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)
	require.True(t, outcome.OK)

	// Attached to the field it was uploaded for: fine.
	outcome, err = guard.CheckStashed(ctx, file.TemporaryRef, types.UploadFieldFeedbackImage)
	require.NoError(t, err)
	assert.True(t, outcome.OK)

	// Attached to a different field: rejected, not measured against the
	// looser cap of the field it was uploaded under.
	outcome, err = guard.CheckStashed(ctx, file.TemporaryRef, types.UploadFieldAvatar)
	require.NoError(t, err)
	require.False(t, outcome.OK)
	assert.Equal(t, ReasonFieldMismatch, outcome.Reason)
	assert.Equal(t, types.UploadFieldAvatar, outcome.Field)
	assert.Contains(t, outcome.Message, "avatar")
}

func TestGuard_CheckStashed_UnknownRef(t *testing.T) {
	guard, _ := newTestGuard(t)

	_, err := guard.CheckStashed(context.Background(), "no-such-ref", types.UploadFieldAvatar)
	assert.Error(t, err)
}

func TestGuard_Receive_StashesValidUpload(t *testing.T) {
	guard, _ := newTestGuard(t)
	ctx := context.Background()

	data := pngBytes(1024)
	file, outcome, err := guard.Receive(ctx, types.UploadFieldAvatar, "me.png", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)
	require.True(t, outcome.OK)
	require.NotNil(t, file)

	assert.NotEmpty(t, file.TemporaryRef)
	assert.Equal(t, int64(len(data)), file.ByteSize)
	stashed, err := os.ReadFile(file.TempPath)
	require.NoError(t, err)
	assert.Equal(t, data, stashed)
}

func TestGuard_Receive_RejectsNonImageContent(t *testing.T) {
	guard, _ := newTestGuard(t)

	data := []byte(strings.Repeat("definitely not a png", 30))
	file, outcome, err := guard.Receive(context.Background(), types.UploadFieldAvatar, "fake.png", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.False(t, outcome.OK)
	assert.Equal(t, ReasonInvalidContent, outcome.Reason)
}

func TestGuard_Receive_ActualSizeIsAuthoritative(t *testing.T) {
	guard, _ := newTestGuard(t)

	// Declared size fits the avatar cap, real content does not.
	data := pngBytes(2*mib + 1)
	file, outcome, err := guard.Receive(context.Background(), types.UploadFieldAvatar, "sneaky.png", 100, bytes.NewReader(data))
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.False(t, outcome.OK)
	assert.Equal(t, ReasonFileTooLarge, outcome.Reason)
}

func TestGuard_Promote(t *testing.T) {
	guard, dir := newTestGuard(t)
	ctx := context.Background()

	data := pngBytes(1024)
	file, _, err := guard.Receive(ctx, types.UploadFieldAvatar, "me.png", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)

	uri, err := guard.Promote(ctx, file.TemporaryRef)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "http://localhost:8080/files/avatars/"))

	// Repeat promotion: same URI, no duplicate object.
	again, err := guard.Promote(ctx, file.TemporaryRef)
	require.NoError(t, err)
	assert.Equal(t, uri, again)

	promoted, err := os.ReadDir(filepath.Join(dir, "files", "avatars"))
	require.NoError(t, err)
	assert.Len(t, promoted, 1)
}

func TestGuard_Promote_AbsentFile(t *testing.T) {
	guard, _ := newTestGuard(t)

	uri, err := guard.Promote(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, uri)
}

func TestGuard_Promote_UnknownRef(t *testing.T) {
	guard, _ := newTestGuard(t)

	_, err := guard.Promote(context.Background(), "no-such-ref")
	assert.Error(t, err)
}

func TestGuard_Discard(t *testing.T) {
	guard, _ := newTestGuard(t)
	ctx := context.Background()

	data := pngBytes(512)
	file, _, err := guard.Receive(ctx, types.UploadFieldFeedbackImage, "pic.jpg", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)

	require.NoError(t, guard.Discard(ctx, file.TemporaryRef))
	_, statErr := os.Stat(file.TempPath)
	assert.True(t, os.IsNotExist(statErr))

	// Discarding twice (or an unknown ref) is a no-op.
	assert.NoError(t, guard.Discard(ctx, file.TemporaryRef))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "me.png", SanitizeFilename("me.png"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "my_photo__1_.jpg", SanitizeFilename("my photo (1).jpg"))
	assert.Equal(t, "file", SanitizeFilename(""))
}
