// Package store defines the persistence interfaces consumed by the services
// layer. Concrete implementations live in the postgres and memory subpackages.
package store

import (
	"context"

	"github.com/guestbook-hq/guestbook-backend/types"
)

// EntryStore handles guestbook entry persistence. Every operation either
// fully succeeds or leaves the store unchanged.
type EntryStore interface {
	// Create persists a new entry, assigns its ID and CreatedAt, and returns
	// the assigned ID.
	Create(ctx context.Context, entry *types.Entry) (string, error)
	// GetByID returns ErrNotFound when no entry matches.
	GetByID(ctx context.Context, id string) (*types.Entry, error)
	// Update applies the given fields to an existing entry and returns the
	// updated entry in a single round trip. ID and CreatedAt are never
	// touched. Returns ErrNotFound when the entry does not exist.
	Update(ctx context.Context, id string, update types.EntryUpdate) (*types.Entry, error)
	// Delete removes the entry. Returns ErrNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
	// List returns all entries ordered by creation time, newest first.
	List(ctx context.Context) ([]types.Entry, error)
}

// UploadStore tracks temporary uploads through their promotion lifecycle.
type UploadStore interface {
	// CreateUpload records a fresh temporary upload.
	CreateUpload(ctx context.Context, file *types.UploadedFile) error
	// GetUpload returns ErrNotFound for unknown references.
	GetUpload(ctx context.Context, ref string) (*types.UploadedFile, error)
	// MarkPromoted sets the permanent URI for an upload exactly once and
	// returns the URI that is now on record. When a concurrent promotion got
	// there first, the previously recorded URI is returned instead of uri.
	MarkPromoted(ctx context.Context, ref, uri string) (string, error)
	// DeleteUpload discards an upload record (e.g. an abandoned submission).
	DeleteUpload(ctx context.Context, ref string) error
}
