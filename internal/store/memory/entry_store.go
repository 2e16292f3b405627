// Package memory implements the store interfaces in process memory. It backs
// the test suite and local development without a database. All operations are
// mutex-serialized so each call fully succeeds or changes nothing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guestbook-hq/guestbook-backend/internal/store"
	"github.com/guestbook-hq/guestbook-backend/types"
)

var _ store.EntryStore = (*EntryStore)(nil)

// EntryStore keeps guestbook entries in a map guarded by a RWMutex.
type EntryStore struct {
	mu      sync.RWMutex
	entries map[string]types.Entry
	now     func() time.Time
}

// NewEntryStore creates an empty in-memory entry store.
func NewEntryStore() *EntryStore {
	return &EntryStore{
		entries: make(map[string]types.Entry),
		now:     time.Now,
	}
}

// WithClock replaces the store's clock; tests use it to pin CreatedAt.
func (s *EntryStore) WithClock(now func() time.Time) *EntryStore {
	s.now = now
	return s
}

func (s *EntryStore) Create(_ context.Context, entry *types.Entry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uuid.NewString()
	entry.CreatedAt = s.now().UTC()
	s.entries[entry.ID] = *entry
	return entry.ID, nil
}

func (s *EntryStore) GetByID(_ context.Context, id string) (*types.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, found := s.entries[id]
	if !found {
		return nil, store.ErrNotFound
	}
	return &entry, nil
}

func (s *EntryStore) Update(_ context.Context, id string, update types.EntryUpdate) (*types.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.entries[id]
	if !found {
		return nil, store.ErrNotFound
	}

	// ID and CreatedAt carry over untouched.
	entry.Name = update.Name
	entry.Email = update.Email
	entry.Phone = update.Phone
	entry.Feedback = update.Feedback
	entry.Avatar = update.Avatar
	entry.FeedbackImage = update.FeedbackImage
	s.entries[id] = entry
	return &entry, nil
}

func (s *EntryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.entries[id]; !found {
		return store.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *EntryStore) List(_ context.Context) ([]types.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]types.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}
