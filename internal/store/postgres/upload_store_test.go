package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guestbook-hq/guestbook-backend/internal/store"
	"github.com/guestbook-hq/guestbook-backend/types"
)

func setupUploadStore(t *testing.T) (*UploadStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUploadStore(mock), mock
}

func TestUploadStore_CreateUpload(t *testing.T) {
	s, mock := setupUploadStore(t)

	file := &types.UploadedFile{
		TemporaryRef: uuid.NewString(),
		Field:        types.UploadFieldAvatar,
		Filename:     "me.png",
		ByteSize:     1024,
		TempPath:     "uploads/tmp/me.png",
	}

	mock.ExpectQuery(`INSERT INTO guestbook_uploads`).
		WithArgs(file.TemporaryRef, "avatar", file.Filename, file.ByteSize, file.TempPath).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))

	require.NoError(t, s.CreateUpload(context.Background(), file))
	assert.False(t, file.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadStore_GetUpload(t *testing.T) {
	s, mock := setupUploadStore(t)
	ref := uuid.NewString()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM guestbook_uploads`).
			WithArgs(ref).
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "field", "filename", "byte_size", "temp_path", "permanent_uri", "created_at",
			}).AddRow(ref, "feedback_image", "pic.jpg", int64(2048), "uploads/tmp/pic.jpg", "", time.Now().UTC()))

		file, err := s.GetUpload(context.Background(), ref)
		require.NoError(t, err)
		assert.Equal(t, types.UploadFieldFeedbackImage, file.Field)
		assert.False(t, file.Promoted())
	})

	t.Run("unknown reference", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM guestbook_uploads`).
			WithArgs(ref).
			WillReturnError(pgx.ErrNoRows)

		_, err := s.GetUpload(context.Background(), ref)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadStore_MarkPromoted(t *testing.T) {
	s, mock := setupUploadStore(t)
	ref := uuid.NewString()
	uri := "http://localhost:8080/files/avatars/me.png"

	t.Run("first promotion wins", func(t *testing.T) {
		mock.ExpectExec(`UPDATE guestbook_uploads SET permanent_uri`).
			WithArgs(ref, uri).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		got, err := s.MarkPromoted(context.Background(), ref, uri)
		require.NoError(t, err)
		assert.Equal(t, uri, got)
	})

	t.Run("repeat promotion returns recorded URI", func(t *testing.T) {
		recorded := "http://localhost:8080/files/avatars/earlier.png"

		mock.ExpectExec(`UPDATE guestbook_uploads SET permanent_uri`).
			WithArgs(ref, uri).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(`SELECT (.+) FROM guestbook_uploads`).
			WithArgs(ref).
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "field", "filename", "byte_size", "temp_path", "permanent_uri", "created_at",
			}).AddRow(ref, "avatar", "me.png", int64(1024), "uploads/tmp/me.png", recorded, time.Now().UTC()))

		got, err := s.MarkPromoted(context.Background(), ref, uri)
		require.NoError(t, err)
		assert.Equal(t, recorded, got)
	})

	t.Run("unknown upload", func(t *testing.T) {
		mock.ExpectExec(`UPDATE guestbook_uploads SET permanent_uri`).
			WithArgs(ref, uri).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(`SELECT (.+) FROM guestbook_uploads`).
			WithArgs(ref).
			WillReturnError(pgx.ErrNoRows)

		_, err := s.MarkPromoted(context.Background(), ref, uri)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadStore_DeleteUpload_Idempotent(t *testing.T) {
	s, mock := setupUploadStore(t)
	ref := uuid.NewString()

	mock.ExpectExec(`DELETE FROM guestbook_uploads`).
		WithArgs(ref).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, s.DeleteUpload(context.Background(), ref))
	assert.NoError(t, mock.ExpectationsWereMet())
}
