package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "meetup not found",
			},
			expected: "NOT_FOUND: meetup not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("mongo connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: mongo connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Internal("wrapped", originalErr)

	if unwrapped := errors.Unwrap(appErr); unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
	if !errors.Is(appErr, originalErr) {
		t.Errorf("errors.Is should see through AppError")
	}
}

func TestQuotaExceeded(t *testing.T) {
	err := QuotaExceeded("monthly limit exceeded for this email address")

	if err.Code != CodeQuotaExceeded {
		t.Errorf("expected code %s, got %s", CodeQuotaExceeded, err.Code)
	}
	if err.HTTPStatus != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", err.HTTPStatus)
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Meetup", "abc-123")

	if err.Details["id"] != "abc-123" {
		t.Errorf("expected id detail abc-123, got %v", err.Details["id"])
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", err.HTTPStatus)
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(InvalidInput("bad")) {
		t.Error("IsAppError should be true for AppError")
	}
	if IsAppError(errors.New("plain")) {
		t.Error("IsAppError should be false for plain error")
	}

	wrapped := fmt.Errorf("outer: %w", Conflict("duplicate"))
	if !IsAppError(wrapped) {
		t.Error("IsAppError should see through fmt.Errorf wrapping")
	}
	if AsAppError(wrapped).Code != CodeConflict {
		t.Error("AsAppError should recover the inner AppError")
	}
}
