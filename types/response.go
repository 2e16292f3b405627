package types

// StatusResponse is a simple success payload.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse documents the error payload produced by the error handler
// middleware. Used for swagger annotations.
type ErrorResponse struct {
	Type        string            `json:"type"`
	Message     string            `json:"message"`
	Details     string            `json:"details,omitempty"`
	Code        string            `json:"code,omitempty"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}

// LiveValidationResponse carries the advisory message for a single field or
// file check. An empty message means the value passed.
type LiveValidationResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// EntryView is the listing-page projection of one entry. Avatar and Image are
// absolute URIs, or empty strings when the entry has no attachment.
type EntryView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Avatar  string `json:"avatar"`
	Image   string `json:"image"`
	Created string `json:"created"`
}

// EntryListResponse is the payload of the listing endpoint. CanModerate tells
// the renderer whether to show per-entry edit/delete controls.
type EntryListResponse struct {
	Entries     []EntryView `json:"entries"`
	CanModerate bool        `json:"can_moderate"`
}
