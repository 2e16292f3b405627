package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/guestbook-hq/guestbook-backend/internal/store"
	"github.com/guestbook-hq/guestbook-backend/types"
)

// Ensure UploadStore implements store.UploadStore.
var _ store.UploadStore = (*UploadStore)(nil)

// UploadStore tracks temporary uploads in the guestbook_uploads table.
type UploadStore struct {
	db DB
}

// NewUploadStore creates an upload store backed by the given connection pool.
func NewUploadStore(db DB) *UploadStore {
	return &UploadStore{db: db}
}

// CreateUpload records a fresh temporary upload.
func (s *UploadStore) CreateUpload(ctx context.Context, file *types.UploadedFile) error {
	query := `
		INSERT INTO guestbook_uploads (id, field, filename, byte_size, temp_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	row := s.db.QueryRow(ctx, query,
		file.TemporaryRef,
		string(file.Field),
		file.Filename,
		file.ByteSize,
		file.TempPath,
	)
	if err := row.Scan(&file.CreatedAt); err != nil {
		return fmt.Errorf("failed to create upload record: %w", err)
	}
	return nil
}

// GetUpload loads an upload by its temporary reference.
func (s *UploadStore) GetUpload(ctx context.Context, ref string) (*types.UploadedFile, error) {
	query := `
		SELECT id, field, filename, byte_size, temp_path,
		       COALESCE(permanent_uri, ''), created_at
		FROM guestbook_uploads
		WHERE id = $1`

	file := &types.UploadedFile{}
	var field string
	err := s.db.QueryRow(ctx, query, ref).Scan(
		&file.TemporaryRef,
		&field,
		&file.Filename,
		&file.ByteSize,
		&file.TempPath,
		&file.PermanentURI,
		&file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	file.Field = types.UploadField(field)
	return file, nil
}

// MarkPromoted stores the permanent URI for an upload exactly once. The
// conditional UPDATE is the idempotency anchor: whichever promotion commits
// first wins, and every later call observes the recorded URI.
func (s *UploadStore) MarkPromoted(ctx context.Context, ref, uri string) (string, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE guestbook_uploads SET permanent_uri = $2 WHERE id = $1 AND permanent_uri IS NULL`,
		ref, uri,
	)
	if err != nil {
		return "", fmt.Errorf("failed to mark upload promoted: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return uri, nil
	}

	// Either the upload is unknown or it was promoted earlier; re-read to tell.
	file, err := s.GetUpload(ctx, ref)
	if err != nil {
		return "", err
	}
	if !file.Promoted() {
		return "", fmt.Errorf("upload %s not promoted and not promotable", ref)
	}
	return file.PermanentURI, nil
}

// DeleteUpload discards an upload record. Deleting an unknown reference is
// not an error; cleanup must be idempotent.
func (s *UploadStore) DeleteUpload(ctx context.Context, ref string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM guestbook_uploads WHERE id = $1`, ref); err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}
