package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/guestbook-hq/guestbook-backend/errors"
	"github.com/guestbook-hq/guestbook-backend/internal/store"
	"github.com/guestbook-hq/guestbook-backend/logger"
	"github.com/guestbook-hq/guestbook-backend/types"
)

// defaultPendingTTL bounds how long a delete confirmation stays valid.
const defaultPendingTTL = 5 * time.Minute

// pendingDelete is the server-side half of an in-flight delete confirmation.
type pendingDelete struct {
	token     string
	expiresAt time.Time
}

// ModerationService executes edit-load and the two-step delete flow against
// specific entries. Authorization is the caller's business: every endpoint
// that reaches this service already sits behind the moderator capability
// check, and the service performs no permission logic of its own.
//
// Delete is a two-state flow keyed by entry ID: RequestDelete issues a token
// (no write), ConfirmDelete deletes only when the token matches the pending
// confirmation for that exact ID. Carrying the ID and token explicitly keeps
// two racing delete dialogs from confirming each other's target.
type ModerationService struct {
	entries store.EntryStore

	mu      sync.Mutex
	pending map[string]pendingDelete
	ttl     time.Duration
	now     func() time.Time
}

// NewModerationService creates a moderation service over the given entry store.
func NewModerationService(entries store.EntryStore) *ModerationService {
	return &ModerationService{
		entries: entries,
		pending: make(map[string]pendingDelete),
		ttl:     defaultPendingTTL,
		now:     time.Now,
	}
}

// WithClock replaces the service clock; tests use it to expire confirmations.
func (s *ModerationService) WithClock(now func() time.Time) *ModerationService {
	s.now = now
	return s
}

// LoadForEdit returns the entry's current fields for an edit form. A missing
// entry is NotFound, never a silently empty record.
func (s *ModerationService) LoadForEdit(ctx context.Context, id string) (*types.Entry, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("entry", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return entry, nil
}

// RequestDelete starts the delete flow for an entry. Nothing is written; the
// caller receives a confirmation token that must accompany ConfirmDelete for
// the same entry ID.
func (s *ModerationService) RequestDelete(ctx context.Context, id string) (*types.PendingDelete, error) {
	if _, err := s.entries.GetByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("entry", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	p := pendingDelete{
		token:     uuid.NewString(),
		expiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.purgeExpiredLocked()
	// A second request for the same entry supersedes the first token.
	s.pending[id] = p
	s.mu.Unlock()

	return &types.PendingDelete{EntryID: id, Token: p.token, ExpiresAt: p.expiresAt}, nil
}

// CancelDelete abandons a pending confirmation. No write has happened, so
// cancelling an unknown ID is a no-op.
func (s *ModerationService) CancelDelete(id string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// ConfirmDelete executes the deletion. Policy: confirming without a live,
// matching pending confirmation for this exact entry ID is rejected — it can
// never delete an unrelated entry or this one by accident.
func (s *ModerationService) ConfirmDelete(ctx context.Context, id, token string) error {
	s.mu.Lock()
	s.purgeExpiredLocked()
	p, found := s.pending[id]
	if !found || p.token != token {
		s.mu.Unlock()
		return apperrors.ValidationFailed(
			"Delete not confirmed",
			"no matching pending delete confirmation for this entry",
		)
	}
	delete(s.pending, id)
	s.mu.Unlock()

	if err := s.entries.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// A concurrent moderator won the race; surface it as not found.
			return apperrors.NotFound("entry", id)
		}
		return apperrors.NewDatabaseError(err)
	}

	logger.GetLogger().Infow("Guestbook entry deleted", "id", id)
	entriesDeleted.Inc()
	return nil
}

// purgeExpiredLocked drops stale confirmations. Callers hold s.mu.
func (s *ModerationService) purgeExpiredLocked() {
	now := s.now()
	for id, p := range s.pending {
		if now.After(p.expiresAt) {
			delete(s.pending, id)
		}
	}
}
