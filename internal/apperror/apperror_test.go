package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("name", "name is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrUnauthorized",
			err:       Unauthorized("invalid or expired session"),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "Forbidden wraps ErrForbidden",
			err:       Forbidden("only teachers can create classes"),
			target:    ErrForbidden,
			wantMatch: true,
		},
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("class", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ProviderFailure wraps ErrProvider",
			err:       ProviderFailure("token refresh", errors.New("connection refused")),
			target:    ErrProvider,
			wantMatch: true,
		},
		{
			name:      "ProviderFailure keeps the cause in the chain",
			err:       ProviderFailure("token refresh", errSentinelCause),
			target:    errSentinelCause,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrForbidden",
			err:       NotFound("class", "abc123"),
			target:    ErrForbidden,
			wantMatch: false,
		},
		{
			name:      "Unauthorized does NOT match ErrProvider",
			err:       Unauthorized("google account not connected"),
			target:    ErrProvider,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

var errSentinelCause = errors.New("cause")

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("lesson", "abc123"),
			wantMessage: "lesson not found with id abc123",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("title", "title is required"),
			wantMessage: "title is required",
		},
		{
			name:        "ProviderFailure names the operation",
			err:         ProviderFailure("listing presentations", errors.New("boom")),
			wantMessage: "listing presentations failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("session_id", "session_id is required")

	if err.Field != "session_id" {
		t.Errorf("Field = %q, want %q", err.Field, "session_id")
	}
}
