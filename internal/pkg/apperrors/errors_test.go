package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", Validation("Title and content are required"), http.StatusBadRequest},
		{"unauthorized", Unauthorized(), http.StatusUnauthorized},
		{"not found", NotFound("Note not found"), http.StatusNotFound},
		{"duplicate", New(ErrDuplicate, "Email already registered"), http.StatusConflict},
		{"configuration", Configuration("OpenAI API key not configured"), http.StatusInternalServerError},
		{"gateway", Gateway(errors.New("timeout"), "Failed to generate summary"), http.StatusInternalServerError},
		{"unknown", errors.New("driver: bad connection"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, StatusCode(tt.err))
		})
	}
}

func TestMessageNeverLeaksInternals(t *testing.T) {
	assert.Equal(t, "Note not found", Message(NotFound("Note not found")))
	assert.Equal(t, "Internal server error", Message(errors.New("pq: relation does not exist")))

	// Wrapped app errors keep their message.
	wrapped := fmt.Errorf("handling request: %w", Validation("Content is required"))
	assert.Equal(t, "Content is required", Message(wrapped))
	assert.Equal(t, http.StatusBadRequest, StatusCode(wrapped))
}

func TestGatewayWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Gateway(cause, "Failed to translate text")

	assert.True(t, errors.Is(err, ErrGateway))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Failed to translate text", Message(err))
}
