package memory

import (
	"context"
	"sync"
	"time"

	"github.com/guestbook-hq/guestbook-backend/internal/store"
	"github.com/guestbook-hq/guestbook-backend/types"
)

var _ store.UploadStore = (*UploadStore)(nil)

// UploadStore keeps temporary upload records in memory.
type UploadStore struct {
	mu      sync.Mutex
	uploads map[string]types.UploadedFile
}

// NewUploadStore creates an empty in-memory upload store.
func NewUploadStore() *UploadStore {
	return &UploadStore{uploads: make(map[string]types.UploadedFile)}
}

func (s *UploadStore) CreateUpload(_ context.Context, file *types.UploadedFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file.CreatedAt = time.Now().UTC()
	s.uploads[file.TemporaryRef] = *file
	return nil
}

func (s *UploadStore) GetUpload(_ context.Context, ref string) (*types.UploadedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, found := s.uploads[ref]
	if !found {
		return nil, store.ErrNotFound
	}
	return &file, nil
}

// MarkPromoted records the URI only if the upload has not been promoted yet.
// Repeat and concurrent calls all settle on the first recorded URI.
func (s *UploadStore) MarkPromoted(_ context.Context, ref, uri string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, found := s.uploads[ref]
	if !found {
		return "", store.ErrNotFound
	}
	if file.Promoted() {
		return file.PermanentURI, nil
	}
	file.PermanentURI = uri
	s.uploads[ref] = file
	return uri, nil
}

func (s *UploadStore) DeleteUpload(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.uploads, ref)
	return nil
}
