// Package postgres implements the store interfaces on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/guestbook-hq/guestbook-backend/internal/store"
	"github.com/guestbook-hq/guestbook-backend/types"
)

// DB is the subset of pgxpool.Pool the stores depend on.
// pgxmock satisfies it in tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Ensure EntryStore implements store.EntryStore.
var _ store.EntryStore = (*EntryStore)(nil)

// EntryStore persists guestbook entries in the guestbook_entries table.
type EntryStore struct {
	db DB
}

// NewEntryStore creates an entry store backed by the given connection pool.
func NewEntryStore(db DB) *EntryStore {
	return &EntryStore{db: db}
}

// nullable maps an empty string to NULL so optional URIs are stored as
// absent rather than as empty text.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Create inserts a new entry and returns the generated ID. CreatedAt is
// assigned by the database at insert time.
func (s *EntryStore) Create(ctx context.Context, entry *types.Entry) (string, error) {
	query := `
		INSERT INTO guestbook_entries (name, email, phone, feedback, avatar, feedback_image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	row := s.db.QueryRow(ctx, query,
		entry.Name,
		entry.Email,
		entry.Phone,
		entry.Feedback,
		nullable(entry.Avatar),
		nullable(entry.FeedbackImage),
	)
	if err := row.Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return "", fmt.Errorf("failed to create entry: %w", err)
	}
	return entry.ID, nil
}

// GetByID retrieves one entry, returning store.ErrNotFound when it is missing.
func (s *EntryStore) GetByID(ctx context.Context, id string) (*types.Entry, error) {
	query := `
		SELECT id, name, email, phone, feedback,
		       COALESCE(avatar, ''), COALESCE(feedback_image, ''), created_at
		FROM guestbook_entries
		WHERE id = $1`

	entry := &types.Entry{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.Name,
		&entry.Email,
		&entry.Phone,
		&entry.Feedback,
		&entry.Avatar,
		&entry.FeedbackImage,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// Update applies new field values to an existing entry and returns the row as
// updated, in one statement so a concurrent delete cannot slip between the
// write and the read-back. The id and created_at columns are deliberately
// absent from the SET list so an edit can never touch them.
func (s *EntryStore) Update(ctx context.Context, id string, update types.EntryUpdate) (*types.Entry, error) {
	query := `
		UPDATE guestbook_entries
		SET name = $1, email = $2, phone = $3, feedback = $4,
		    avatar = $5, feedback_image = $6
		WHERE id = $7
		RETURNING id, name, email, phone, feedback,
		          COALESCE(avatar, ''), COALESCE(feedback_image, ''), created_at`

	entry := &types.Entry{}
	err := s.db.QueryRow(ctx, query,
		update.Name,
		update.Email,
		update.Phone,
		update.Feedback,
		nullable(update.Avatar),
		nullable(update.FeedbackImage),
		id,
	).Scan(
		&entry.ID,
		&entry.Name,
		&entry.Email,
		&entry.Phone,
		&entry.Feedback,
		&entry.Avatar,
		&entry.FeedbackImage,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	return entry, nil
}

// Delete removes an entry, reporting store.ErrNotFound when nothing matched.
func (s *EntryStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM guestbook_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// List returns all entries, newest first.
func (s *EntryStore) List(ctx context.Context) ([]types.Entry, error) {
	query := `
		SELECT id, name, email, phone, feedback,
		       COALESCE(avatar, ''), COALESCE(feedback_image, ''), created_at
		FROM guestbook_entries
		ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []types.Entry
	for rows.Next() {
		var entry types.Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.Name,
			&entry.Email,
			&entry.Phone,
			&entry.Feedback,
			&entry.Avatar,
			&entry.FeedbackImage,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}
