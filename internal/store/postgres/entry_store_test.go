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

func setupEntryStore(t *testing.T) (*EntryStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewEntryStore(mock), mock
}

func testEntry() *types.Entry {
	return &types.Entry{
		Name:     "Olena Kovalenko",
		Email:    "olena@example.com",
		Phone:    "0501234567",
		Feedback: "Lovely guestbook.",
		Avatar:   "http://localhost:8080/files/avatars/a.png",
	}
}

func TestEntryStore_Create(t *testing.T) {
	s, mock := setupEntryStore(t)
	entry := testEntry()

	id := uuid.NewString()
	createdAt := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO guestbook_entries`).
		WithArgs(entry.Name, entry.Email, entry.Phone, entry.Feedback, entry.Avatar, nil).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(id, createdAt))

	got, err := s.Create(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, id, entry.ID)
	assert.Equal(t, createdAt, entry.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryStore_GetByID(t *testing.T) {
	s, mock := setupEntryStore(t)
	id := uuid.NewString()
	createdAt := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM guestbook_entries`).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "name", "email", "phone", "feedback", "avatar", "feedback_image", "created_at",
			}).AddRow(id, "Olena", "olena@example.com", "0501234567", "Nice.", "", "", createdAt))

		entry, err := s.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, entry.ID)
		assert.Empty(t, entry.Avatar)
		assert.Equal(t, createdAt, entry.CreatedAt)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM guestbook_entries`).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		_, err := s.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryStore_Update(t *testing.T) {
	s, mock := setupEntryStore(t)
	id := uuid.NewString()
	update := types.EntryUpdate{
		Name:     "Olena K.",
		Email:    "olena@example.com",
		Phone:    "0501234567",
		Feedback: "Edited.",
	}

	t.Run("returns the updated row without touching created_at", func(t *testing.T) {
		createdAt := time.Now().UTC()
		mock.ExpectQuery(`UPDATE guestbook_entries SET name`).
			WithArgs(update.Name, update.Email, update.Phone, update.Feedback, nil, nil, id).
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "name", "email", "phone", "feedback", "avatar", "feedback_image", "created_at",
			}).AddRow(id, update.Name, update.Email, update.Phone, update.Feedback, "", "", createdAt))

		entry, err := s.Update(context.Background(), id, update)
		require.NoError(t, err)
		assert.Equal(t, id, entry.ID)
		assert.Equal(t, "Olena K.", entry.Name)
		assert.Equal(t, createdAt, entry.CreatedAt)
	})

	t.Run("missing entry", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE guestbook_entries SET name`).
			WithArgs(update.Name, update.Email, update.Phone, update.Feedback, nil, nil, id).
			WillReturnError(pgx.ErrNoRows)

		_, err := s.Update(context.Background(), id, update)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryStore_Delete(t *testing.T) {
	s, mock := setupEntryStore(t)
	id := uuid.NewString()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM guestbook_entries`).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, s.Delete(context.Background(), id))
	})

	t.Run("missing entry", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM guestbook_entries`).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, s.Delete(context.Background(), id), store.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryStore_List(t *testing.T) {
	s, mock := setupEntryStore(t)

	newer := time.Now().UTC()
	older := newer.Add(-time.Hour)

	mock.ExpectQuery(`SELECT (.+) FROM guestbook_entries ORDER BY created_at DESC`).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "phone", "feedback", "avatar", "feedback_image", "created_at",
		}).
			AddRow(uuid.NewString(), "B", "b@example.com", "0000000000", "second", "", "", newer).
			AddRow(uuid.NewString(), "A", "a@example.com", "1111111111", "first", "", "", older))

	entries, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "B", entries[0].Name)
	assert.Equal(t, "A", entries[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
