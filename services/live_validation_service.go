package services

import (
	"github.com/guestbook-hq/guestbook-backend/types"
	"github.com/guestbook-hq/guestbook-backend/upload"
	"github.com/guestbook-hq/guestbook-backend/validation"
)

// LiveValidationService answers per-field and per-file checks while the user
// is still editing the form. Its verdicts are advisory only: they run against
// client-declared state and never replace the authoritative checks performed
// by SubmissionService.Submit. Each call is stateless, so superseded checks
// can simply be abandoned by the client.
type LiveValidationService struct {
	validator *validation.Validator
	guard     *upload.Guard
}

// NewLiveValidationService creates the advisory validation service.
func NewLiveValidationService(validator *validation.Validator, guard *upload.Guard) *LiveValidationService {
	return &LiveValidationService{validator: validator, guard: guard}
}

// CheckField validates a single field value. An empty return means the value
// currently passes.
func (s *LiveValidationService) CheckField(field, value string) string {
	outcome := s.validator.Validate(field, value)
	if outcome.OK {
		return ""
	}
	return outcome.Message
}

// CheckFile validates a file descriptor (name and declared size) for an
// attachment role. An empty return means the file would currently pass.
func (s *LiveValidationService) CheckFile(field types.UploadField, filename string, size int64) string {
	outcome := s.guard.Check(field, filename, size)
	if outcome.OK {
		return ""
	}
	return outcome.Message
}
