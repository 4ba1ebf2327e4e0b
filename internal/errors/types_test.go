package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForgeErrorFormatting(t *testing.T) {
	t.Run("code and message", func(t *testing.T) {
		err := NewValidationError("EMPTY_NAME", "name input must not be empty")
		assert.Equal(t, "[EMPTY_NAME] name input must not be empty", err.Error())
	})

	t.Run("path is included", func(t *testing.T) {
		err := NewIOError("WRITE_FAILED", "failed to write manifest", nil).WithPath("/tmp/x/package.json")
		assert.Equal(t, "[WRITE_FAILED] /tmp/x/package.json failed to write manifest", err.Error())
	})

	t.Run("cause is appended", func(t *testing.T) {
		cause := fmt.Errorf("disk full")
		err := NewIOError("WRITE_FAILED", "failed to write manifest", cause)
		assert.Contains(t, err.Error(), ": disk full")
	})
}

func TestForgeErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := NewInternalError("BOOM", "something broke", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

func TestForgeErrorIs(t *testing.T) {
	a := NewValidationError("UNKNOWN_TEMPLATE", "first message")
	b := NewValidationError("UNKNOWN_TEMPLATE", "different message")
	c := NewValidationError("EMPTY_NAME", "first message")

	assert.ErrorIs(t, a, b, "same type and code match regardless of message")
	assert.NotErrorIs(t, a, c, "different codes do not match")
}

func TestForgeErrorContext(t *testing.T) {
	err := NewValidationError("UNKNOWN_TEMPLATE", "nope").
		WithContext("template", "sveltekit").
		WithContext("kind", "apps")

	assert.Equal(t, "sveltekit", err.Context["template"])
	assert.Equal(t, "apps", err.Context["kind"])
}

func TestRecoverableAndType(t *testing.T) {
	validation := NewValidationError("X", "x")
	io := NewIOError("Y", "y", nil)

	assert.True(t, IsRecoverable(validation))
	assert.False(t, IsRecoverable(io))
	assert.False(t, IsRecoverable(fmt.Errorf("plain")))

	assert.True(t, IsType(validation, ErrorTypeValidation))
	assert.False(t, IsType(validation, ErrorTypeIO))

	wrapped := fmt.Errorf("outer: %w", io)
	assert.True(t, IsType(wrapped, ErrorTypeIO))
}

func TestUnknownTemplateError(t *testing.T) {
	available := []string{"express", "hono", "nestjs"}

	t.Run("suggests near misses", func(t *testing.T) {
		err := UnknownTemplateError("expres", "apps", available)
		require.Equal(t, "UNKNOWN_TEMPLATE", err.Code)
		assert.Contains(t, err.Message, `did you mean "express"?`)
		assert.Contains(t, err.Message, "available templates: express, hono, nestjs")
	})

	t.Run("no suggestion for distant input", func(t *testing.T) {
		err := UnknownTemplateError("zzzzzzzz", "apps", available)
		assert.NotContains(t, err.Message, "did you mean")
		assert.Contains(t, err.Message, "available templates:")
	})

	t.Run("suggestion is case-insensitive", func(t *testing.T) {
		err := UnknownTemplateError("Hono", "apps", available)
		assert.Contains(t, err.Message, `did you mean "hono"?`)
	})
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"express", "expres", 1},
		{"hono", "nestjs", 6},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, editDistance(tt.a, tt.b), "editDistance(%q, %q)", tt.a, tt.b)
	}
}
