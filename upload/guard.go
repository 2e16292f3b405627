package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/guestbook-hq/guestbook-backend/config"
	"github.com/guestbook-hq/guestbook-backend/internal/store"
	"github.com/guestbook-hq/guestbook-backend/types"
)

// Reason classifies why the guard rejected a file.
type Reason string

const (
	ReasonInvalidExtension Reason = "InvalidExtension"
	ReasonFileTooLarge     Reason = "FileTooLarge"
	ReasonInvalidContent   Reason = "InvalidContent"
	ReasonFieldMismatch    Reason = "FieldMismatch"
)

// Outcome is the result of checking a file against the upload policy.
// A rejection carries the field and configured limit for message formatting.
type Outcome struct {
	OK      bool
	Reason  Reason
	Field   types.UploadField
	Limit   int64
	Message string
}

func accepted() Outcome {
	return Outcome{OK: true}
}

// allowedExtensions is the filename extension allow-list, case-insensitive.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// allowedMimes is what the sniffed file content must resolve to.
var allowedMimes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Guard validates uploaded files against per-field limits and promotes
// accepted temporary files to permanent storage exactly once.
type Guard struct {
	policy  config.ValidationPolicy
	uploads store.UploadStore
	storage FileStorage
	tempDir string
}

// NewGuard creates a Guard. tempDir is where incoming files are stashed
// before promotion.
func NewGuard(policy config.ValidationPolicy, uploads store.UploadStore, storage FileStorage, tempDir string) *Guard {
	return &Guard{
		policy:  policy,
		uploads: uploads,
		storage: storage,
		tempDir: tempDir,
	}
}

// limitFor returns the configured byte cap for an attachment role.
func (g *Guard) limitFor(field types.UploadField) int64 {
	if field == types.UploadFieldAvatar {
		return g.policy.AvatarMaxBytes
	}
	return g.policy.FeedbackImageMaxBytes
}

// Check validates a file descriptor (extension and declared size) against the
// per-field policy. It performs no I/O and is safe for repeated advisory use.
func (g *Guard) Check(field types.UploadField, filename string, size int64) Outcome {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return Outcome{
			Reason:  ReasonInvalidExtension,
			Field:   field,
			Message: fmt.Sprintf("%s: file format not allowed. Allowed: jpg, jpeg, png.", field),
		}
	}

	limit := g.limitFor(field)
	if size > limit {
		return Outcome{
			Reason:  ReasonFileTooLarge,
			Field:   field,
			Limit:   limit,
			Message: fmt.Sprintf("%s: file exceeds the maximum size of %d MB.", field, limit/(1024*1024)),
		}
	}
	return accepted()
}

// CheckUpload validates a stashed upload record against the limits of the
// field it is being attached to. Each field carries its own size cap, so a
// file stashed under one field cannot be attached to another.
func (g *Guard) CheckUpload(file *types.UploadedFile, field types.UploadField) Outcome {
	if file.Field != field {
		return Outcome{
			Reason:  ReasonFieldMismatch,
			Field:   field,
			Message: fmt.Sprintf("%s: file was uploaded for a different field.", field),
		}
	}
	return g.Check(field, file.Filename, file.ByteSize)
}

// CheckStashed re-validates a stashed upload by its temporary reference,
// against the field it is being attached to. An unknown reference is an
// error, not a policy rejection; the submission referencing it cannot
// proceed.
func (g *Guard) CheckStashed(ctx context.Context, ref string, field types.UploadField) (Outcome, error) {
	file, err := g.uploads.GetUpload(ctx, ref)
	if err != nil {
		return Outcome{}, fmt.Errorf("unknown upload reference %s: %w", ref, err)
	}
	return g.CheckUpload(file, field), nil
}

// Receive validates an incoming file and stashes it in the temporary area.
// A policy rejection comes back as a non-OK Outcome, not an error; errors are
// reserved for I/O failures.
func (g *Guard) Receive(ctx context.Context, field types.UploadField, filename string, size int64, r io.Reader) (*types.UploadedFile, Outcome, error) {
	if outcome := g.Check(field, filename, size); !outcome.OK {
		return nil, outcome, nil
	}

	// Server-side MIME detection; the extension alone is client-declared state.
	sniffBuf := make([]byte, 512)
	n, err := io.ReadFull(r, sniffBuf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, Outcome{}, fmt.Errorf("failed to read file header: %w", err)
	}
	if !allowedMimes[mimetype.Detect(sniffBuf[:n]).String()] {
		return nil, Outcome{
			Reason:  ReasonInvalidContent,
			Field:   field,
			Message: fmt.Sprintf("%s: file content is not a supported image.", field),
		}, nil
	}

	ref := uuid.NewString()
	tempPath := filepath.Join(g.tempDir, ref+"_"+SanitizeFilename(filename))
	if err := os.MkdirAll(g.tempDir, 0o755); err != nil {
		return nil, Outcome{}, fmt.Errorf("failed to create temp directory: %w", err)
	}

	f, err := os.Create(tempPath)
	if err != nil {
		return nil, Outcome{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, io.MultiReader(bytes.NewReader(sniffBuf[:n]), r))
	if err != nil {
		_ = os.Remove(tempPath)
		return nil, Outcome{}, fmt.Errorf("failed to stash upload: %w", err)
	}

	// The declared size passed Check; the actual byte count is authoritative.
	if limit := g.limitFor(field); written > limit {
		_ = os.Remove(tempPath)
		return nil, Outcome{
			Reason:  ReasonFileTooLarge,
			Field:   field,
			Limit:   limit,
			Message: fmt.Sprintf("%s: file exceeds the maximum size of %d MB.", field, limit/(1024*1024)),
		}, nil
	}

	file := &types.UploadedFile{
		TemporaryRef: ref,
		Field:        field,
		Filename:     SanitizeFilename(filename),
		ByteSize:     written,
		TempPath:     tempPath,
	}
	if err := g.uploads.CreateUpload(ctx, file); err != nil {
		_ = os.Remove(tempPath)
		return nil, Outcome{}, fmt.Errorf("failed to record upload: %w", err)
	}
	return file, accepted(), nil
}

// permanentKey builds the storage key an upload is promoted to.
func permanentKey(file *types.UploadedFile) string {
	prefix := "feedback_images"
	if file.Field == types.UploadFieldAvatar {
		prefix = "avatars"
	}
	return fmt.Sprintf("%s/%s_%s", prefix, file.TemporaryRef, file.Filename)
}

// Promote moves a stashed upload to permanent storage and returns its URI.
// Promotion is idempotent per upload: a file promoted earlier (or by a
// concurrent request) yields the recorded URI without a second copy. An empty
// reference means no file was attached and yields an empty URI, not an error.
func (g *Guard) Promote(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}

	file, err := g.uploads.GetUpload(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("unknown upload reference %s: %w", ref, err)
	}
	if file.Promoted() {
		return file.PermanentURI, nil
	}

	src, err := os.Open(file.TempPath)
	if err != nil {
		return "", fmt.Errorf("temporary upload %s is unreadable: %w", ref, err)
	}
	defer src.Close()

	key := permanentKey(file)
	if err := g.storage.Save(ctx, key, src, file.ByteSize); err != nil {
		return "", fmt.Errorf("failed to store upload %s: %w", ref, err)
	}
	uri, err := g.storage.GetURL(ctx, key)
	if err != nil {
		return "", err
	}

	final, err := g.uploads.MarkPromoted(ctx, ref, uri)
	if err != nil {
		return "", err
	}
	if final != uri {
		// A concurrent promotion won and its URI is the recorded one. The
		// key is deterministic per upload, so this Save overwrote the same
		// object with identical bytes and nothing needs cleaning up.
		return final, nil
	}

	// Best-effort temp cleanup; the record now points at permanent storage.
	_ = os.Remove(file.TempPath)
	return final, nil
}

// Discard removes a stashed upload that will never be promoted.
func (g *Guard) Discard(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	file, err := g.uploads.GetUpload(ctx, ref)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if !file.Promoted() {
		_ = os.Remove(file.TempPath)
	}
	return g.uploads.DeleteUpload(ctx, ref)
}
