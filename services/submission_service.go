// Package services contains the guestbook business logic: the authoritative
// submission pipeline, the advisory live-validation checks, and moderation.
package services

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/guestbook-hq/guestbook-backend/errors"
	"github.com/guestbook-hq/guestbook-backend/internal/store"
	"github.com/guestbook-hq/guestbook-backend/logger"
	"github.com/guestbook-hq/guestbook-backend/types"
	"github.com/guestbook-hq/guestbook-backend/upload"
	"github.com/guestbook-hq/guestbook-backend/validation"
)

// SubmissionService is the single authority allowed to turn a guestbook
// submission into a persisted write. Live validation is advisory; everything
// is re-checked here regardless of what the client saw.
type SubmissionService struct {
	entries   store.EntryStore
	guard     *upload.Guard
	validator *validation.Validator
}

// NewSubmissionService creates the submission pipeline. All collaborators are
// injected; the service holds no ambient state.
func NewSubmissionService(entries store.EntryStore, guard *upload.Guard, validator *validation.Validator) *SubmissionService {
	return &SubmissionService{
		entries:   entries,
		guard:     guard,
		validator: validator,
	}
}

// attachment pairs a form field with the upload reference it carried.
type attachment struct {
	field types.UploadField
	ref   string
}

func attachments(in types.RawSubmission) []attachment {
	return []attachment{
		{types.UploadFieldAvatar, in.AvatarRef},
		{types.UploadFieldFeedbackImage, in.FeedbackImageRef},
	}
}

// Submit validates the whole submission, promotes accepted files, and writes
// the entry. An empty existingID creates a new entry; a non-empty one updates
// that entry, preserving its id and created_at. Create vs. update is decided
// solely by existingID, never by inspecting the form contents.
//
// On validation failure the returned error is an AppError carrying the
// complete field-error mapping, and nothing has been written or promoted.
func (s *SubmissionService) Submit(ctx context.Context, in types.RawSubmission, existingID string) (*types.SubmissionResult, error) {
	log := logger.GetLogger()

	// Phase 1: every field rule runs; failures accumulate.
	fieldErrors := s.validator.ValidateAll(in)

	// Phase 2: every attached file is checked the same way.
	for _, a := range attachments(in) {
		if a.ref == "" {
			continue
		}
		outcome, err := s.guard.CheckStashed(ctx, a.ref, a.field)
		if err != nil {
			// A reference the upload subsystem never issued (or already
			// discarded) is an abortive condition, not user input.
			return nil, apperrors.Wrap(err, apperrors.ValidationError, "invalid upload reference")
		}
		if !outcome.OK {
			fieldErrors[string(a.field)] = outcome.Message
		}
	}

	if len(fieldErrors) > 0 {
		submissionsRejected.Inc()
		return nil, apperrors.SubmissionRejected(fieldErrors)
	}

	// Phase 3: promotion happens only for fully valid submissions, and fully
	// precedes the entry write that references the promoted URIs.
	avatarURI, err := s.guard.Promote(ctx, in.AvatarRef)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ServerError, "failed to store avatar")
	}
	imageURI, err := s.guard.Promote(ctx, in.FeedbackImageRef)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ServerError, "failed to store feedback image")
	}

	if existingID != "" {
		update := types.EntryUpdate{
			Name:          strings.TrimSpace(in.Name),
			Email:         strings.TrimSpace(in.Email),
			Phone:         strings.TrimSpace(in.Phone),
			Feedback:      strings.TrimSpace(in.Feedback),
			Avatar:        avatarURI,
			FeedbackImage: imageURI,
		}
		entry, err := s.entries.Update(ctx, existingID, update)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperrors.NotFound("entry", existingID)
			}
			return nil, apperrors.NewDatabaseError(err)
		}
		log.Infow("Guestbook entry updated", "id", existingID, "email", logger.MaskEmail(entry.Email))
		submissionsAccepted.WithLabelValues(string(types.SubmissionUpdated)).Inc()
		return &types.SubmissionResult{Outcome: types.SubmissionUpdated, Entry: entry}, nil
	}

	entry := &types.Entry{
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		Feedback:      strings.TrimSpace(in.Feedback),
		Avatar:        avatarURI,
		FeedbackImage: imageURI,
	}
	if _, err := s.entries.Create(ctx, entry); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	log.Infow("Guestbook entry created", "id", entry.ID, "email", logger.MaskEmail(entry.Email))
	submissionsAccepted.WithLabelValues(string(types.SubmissionCreated)).Inc()
	return &types.SubmissionResult{Outcome: types.SubmissionCreated, Entry: entry}, nil
}

// List returns all entries, newest first.
func (s *SubmissionService) List(ctx context.Context) ([]types.Entry, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return entries, nil
}

// ListViews projects entries into the listing-page shape: absolute URIs (or
// empty strings) for images and a formatted creation timestamp.
func (s *SubmissionService) ListViews(ctx context.Context) ([]types.EntryView, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]types.EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, types.EntryView{
			ID:      e.ID,
			Name:    e.Name,
			Email:   e.Email,
			Phone:   e.Phone,
			Message: e.Feedback,
			Avatar:  e.Avatar,
			Image:   e.FeedbackImage,
			Created: e.CreatedAt.Format("01/02/2006 15:04:05"),
		})
	}
	return views, nil
}
