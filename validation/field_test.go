package validation

import (
	"strings"
	"testing"

	"github.com/guestbook-hq/guestbook-backend/config"
	"github.com/guestbook-hq/guestbook-backend/types"
	"github.com/stretchr/testify/assert"
)

func newTestValidator() *Validator {
	return New(config.DefaultValidationPolicy())
}

func TestValidateName(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"single character", "a", false},
		{"whitespace only", "   ", false},
		{"two characters", "ab", true},
		{"trimmed to two", "  ab  ", true},
		{"multibyte name", "Ія", true},
		{"exactly max", strings.Repeat("a", 100), true},
		{"over max", strings.Repeat("a", 101), false},
		{"typical name", "Olena Kovalenko", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := v.ValidateName(tt.input)
			assert.Equal(t, tt.ok, outcome.OK)
			if !tt.ok {
				assert.NotEmpty(t, outcome.Message)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	v := newTestValidator()

	t.Run("empty gets a distinct required message", func(t *testing.T) {
		outcome := v.ValidateEmail("")
		assert.False(t, outcome.OK)
		assert.Equal(t, "Email is required.", outcome.Message)
	})

	t.Run("non-latin characters rejected", func(t *testing.T) {
		outcome := v.ValidateEmail("тест@mail.com")
		assert.False(t, outcome.OK)
		assert.Equal(t, "Email must contain only Latin characters.", outcome.Message)
	})

	tests := []struct {
		input string
		ok    bool
	}{
		{"a@b.co", true},
		{"user.name+tag@example.org", true},
		{"no-at-sign.com", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"user@.com", false},
		{"  a@b.co  ", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.ok, v.ValidateEmail(tt.input).OK)
		})
	}
}

func TestValidatePhone(t *testing.T) {
	v := newTestValidator()

	t.Run("non-digit characters", func(t *testing.T) {
		outcome := v.ValidatePhone("050-123-4567")
		assert.False(t, outcome.OK)
		assert.Equal(t, "Phone may contain digits only.", outcome.Message)
	})

	t.Run("wrong digit count", func(t *testing.T) {
		outcome := v.ValidatePhone("12345")
		assert.False(t, outcome.OK)
		assert.Equal(t, "Phone must contain exactly 10 digits.", outcome.Message)
	})

	t.Run("exactly ten digits", func(t *testing.T) {
		assert.True(t, v.ValidatePhone("0501234567").OK)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		assert.True(t, v.ValidatePhone(" 0501234567 ").OK)
	})

	t.Run("empty is not digits", func(t *testing.T) {
		assert.False(t, v.ValidatePhone("").OK)
	})
}

func TestValidatePhone_PolicyDriven(t *testing.T) {
	policy := config.DefaultValidationPolicy()
	policy.PhoneDigits = 13
	v := New(policy)

	assert.True(t, v.ValidatePhone("0123456789012").OK)
	assert.False(t, v.ValidatePhone("0501234567").OK)
}

func TestValidateFeedback(t *testing.T) {
	v := newTestValidator()

	assert.False(t, v.ValidateFeedback("").OK)
	assert.False(t, v.ValidateFeedback("   \n ").OK)
	assert.True(t, v.ValidateFeedback("Great site!").OK)
	assert.True(t, v.ValidateFeedback(strings.Repeat("x", 5000)).OK)
	assert.False(t, v.ValidateFeedback(strings.Repeat("x", 5001)).OK)
}

func TestValidate_UnknownFieldPasses(t *testing.T) {
	v := newTestValidator()
	assert.True(t, v.Validate("website", "not-checked").OK)
}

func TestValidateAll_CollectsEveryFailure(t *testing.T) {
	v := newTestValidator()

	fieldErrors := v.ValidateAll(types.RawSubmission{
		Name:     "x",
		Email:    "not-an-email",
		Phone:    "abc",
		Feedback: "",
	})

	assert.Len(t, fieldErrors, 4)
	assert.Contains(t, fieldErrors, FieldName)
	assert.Contains(t, fieldErrors, FieldEmail)
	assert.Contains(t, fieldErrors, FieldPhone)
	assert.Contains(t, fieldErrors, FieldFeedback)
}

func TestValidateAll_CleanSubmission(t *testing.T) {
	v := newTestValidator()

	fieldErrors := v.ValidateAll(types.RawSubmission{
		Name:     "Olena",
		Email:    "olena@example.com",
		Phone:    "0501234567",
		Feedback: "Lovely guestbook.",
	})

	assert.Empty(t, fieldErrors)
}
