package types

import "time"

// UploadField identifies which entry attachment an upload is destined for.
type UploadField string

const (
	UploadFieldAvatar        UploadField = "avatar"
	UploadFieldFeedbackImage UploadField = "feedback_image"
)

// Valid reports whether the field names a known attachment role.
func (f UploadField) Valid() bool {
	return f == UploadFieldAvatar || f == UploadFieldFeedbackImage
}

// Entry represents a guestbook entry stored in the database.
// CreatedAt is set once when the original submission is persisted and is
// never refreshed by later edits.
type Entry struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Feedback      string    `json:"feedback"`
	Avatar        string    `json:"avatar,omitempty"`
	FeedbackImage string    `json:"feedback_image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RawSubmission is the unvalidated payload of a guestbook form submission.
// AvatarRef and FeedbackImageRef carry temporary upload references obtained
// from the upload endpoint; either may be empty.
type RawSubmission struct {
	Name             string `json:"name" form:"name"`
	Email            string `json:"email" form:"email"`
	Phone            string `json:"phone" form:"phone"`
	Feedback         string `json:"feedback" form:"feedback"`
	AvatarRef        string `json:"avatar_ref,omitempty" form:"avatar_ref"`
	FeedbackImageRef string `json:"feedback_image_ref,omitempty" form:"feedback_image_ref"`
}

// UploadedFile describes a temporary upload awaiting promotion. It is owned
// by the submission until promotion; once PermanentURI is set the file
// belongs to the entry that references it.
type UploadedFile struct {
	TemporaryRef string      `json:"temporary_ref"`
	Field        UploadField `json:"field"`
	Filename     string      `json:"filename"`
	ByteSize     int64       `json:"byte_size"`
	TempPath     string      `json:"-"`
	PermanentURI string      `json:"permanent_uri,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Promoted reports whether the upload has already been moved to permanent storage.
func (f *UploadedFile) Promoted() bool {
	return f.PermanentURI != ""
}

// EntryUpdate carries the fields applied to an existing entry.
// ID and CreatedAt are never part of an update.
type EntryUpdate struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Feedback      string `json:"feedback"`
	Avatar        string `json:"avatar"`
	FeedbackImage string `json:"feedback_image"`
}

// SubmissionOutcome distinguishes a freshly created entry from an edit.
type SubmissionOutcome string

const (
	SubmissionCreated SubmissionOutcome = "created"
	SubmissionUpdated SubmissionOutcome = "updated"
)

// SubmissionResult wraps the persisted entry produced by an accepted submission.
type SubmissionResult struct {
	Outcome SubmissionOutcome `json:"outcome"`
	Entry   *Entry            `json:"entry"`
}

// PendingDelete is the transient first half of the two-step delete flow.
// The token must accompany the confirmation for the same entry ID.
type PendingDelete struct {
	EntryID   string    `json:"entry_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
