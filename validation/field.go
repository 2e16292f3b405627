// Package validation implements the pure per-field rules applied to guestbook
// submissions. Every check is deterministic, has no side effects, and is safe
// to call repeatedly, which makes the same code serve both live (advisory)
// validation and the authoritative pre-write check.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/guestbook-hq/guestbook-backend/config"
	"github.com/guestbook-hq/guestbook-backend/types"
)

// Field names accepted by Validate.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldFeedback = "feedback"
)

// emailPattern matches local-part "@" domain "." tld.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// digitsPattern matches strings consisting solely of ASCII digits.
var digitsPattern = regexp.MustCompile(`^[0-9]+$`)

// Outcome is the result of validating a single field value.
type Outcome struct {
	OK      bool
	Message string
}

func ok() Outcome {
	return Outcome{OK: true}
}

func fail(message string) Outcome {
	return Outcome{Message: message}
}

// Validator applies a ValidationPolicy to individual submission fields.
type Validator struct {
	policy config.ValidationPolicy
}

// New creates a Validator bound to the given policy.
func New(policy config.ValidationPolicy) *Validator {
	return &Validator{policy: policy}
}

// Policy returns the rule set the validator was built with.
func (v *Validator) Policy() config.ValidationPolicy {
	return v.policy
}

// Validate checks a single field value by name. Unknown field names pass,
// mirroring how unvalidated form elements are ignored rather than rejected.
func (v *Validator) Validate(field, raw string) Outcome {
	switch field {
	case FieldName:
		return v.ValidateName(raw)
	case FieldEmail:
		return v.ValidateEmail(raw)
	case FieldPhone:
		return v.ValidatePhone(raw)
	case FieldFeedback:
		return v.ValidateFeedback(raw)
	default:
		return ok()
	}
}

// ValidateName requires a trimmed length within the policy's name bounds.
func (v *Validator) ValidateName(raw string) Outcome {
	n := utf8.RuneCountInString(strings.TrimSpace(raw))
	if n < v.policy.NameMinLen {
		return fail(fmt.Sprintf("Name must be at least %d characters.", v.policy.NameMinLen))
	}
	if n > v.policy.NameMaxLen {
		return fail(fmt.Sprintf("Name must be at most %d characters.", v.policy.NameMaxLen))
	}
	return ok()
}

// ValidateEmail requires a non-empty, ASCII-only address matching the email
// grammar. Empty input gets its own "required" message.
func (v *Validator) ValidateEmail(raw string) Outcome {
	value := strings.TrimSpace(raw)
	if value == "" {
		return fail("Email is required.")
	}
	for _, r := range value {
		if r > 127 {
			return fail("Email must contain only Latin characters.")
		}
	}
	if !emailPattern.MatchString(value) {
		return fail("Invalid email format.")
	}
	return ok()
}

// ValidatePhone requires digits only, then exactly the policy's digit count.
func (v *Validator) ValidatePhone(raw string) Outcome {
	value := strings.TrimSpace(raw)
	if !digitsPattern.MatchString(value) {
		return fail("Phone may contain digits only.")
	}
	if len(value) != v.policy.PhoneDigits {
		return fail(fmt.Sprintf("Phone must contain exactly %d digits.", v.policy.PhoneDigits))
	}
	return ok()
}

// ValidateFeedback requires non-empty trimmed text within the policy's cap.
func (v *Validator) ValidateFeedback(raw string) Outcome {
	n := utf8.RuneCountInString(strings.TrimSpace(raw))
	if n == 0 {
		return fail("Please enter your feedback.")
	}
	if n > v.policy.FeedbackMaxLen {
		return fail(fmt.Sprintf("Feedback must be at most %d characters.", v.policy.FeedbackMaxLen))
	}
	return ok()
}

// ValidateAll runs every field rule against the submission and collects all
// failures keyed by field name. It never short-circuits, so a caller can
// report every invalid field at once. An empty map means the submission is
// clean.
func (v *Validator) ValidateAll(in types.RawSubmission) map[string]string {
	fieldErrors := make(map[string]string)

	checks := []struct {
		field string
		value string
	}{
		{FieldName, in.Name},
		{FieldEmail, in.Email},
		{FieldPhone, in.Phone},
		{FieldFeedback, in.Feedback},
	}
	for _, c := range checks {
		if outcome := v.Validate(c.field, c.value); !outcome.OK {
			fieldErrors[c.field] = outcome.Message
		}
	}
	return fieldErrors
}
