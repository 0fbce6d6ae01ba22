package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("MT-TEST-1000", "test message"),
			expected: "[MT-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("MT-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[MT-TEST-1001] test message: extra info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("MT-TEST-1000", "message 1")
	err2 := NewDomainError("MT-TEST-1000", "message 2") // Same code, different message
	err3 := NewDomainError("MT-TEST-1001", "message 1")

	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}

	// Details do not affect identity
	if !errors.Is(ErrPostTextTooLong.WithDetails("140 > 136"), ErrPostTextTooLong) {
		t.Error("errors.Is should match a sentinel after WithDetails")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := NewDomainError("MT-TEST-1000", "wrapper").WithCause(cause)

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if errors.Unwrap(NewDomainError("MT-TEST-1000", "no cause")) != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestDomainError_WithDetails(t *testing.T) {
	original := NewDomainError("MT-TEST-1000", "original message")
	withDetails := original.WithDetails("additional details")

	if original.Details != "" {
		t.Error("WithDetails should not modify original error")
	}
	if withDetails.Details != "additional details" {
		t.Errorf("Details = %q, want %q", withDetails.Details, "additional details")
	}
	if withDetails.Code != original.Code || withDetails.Message != original.Message {
		t.Errorf("WithDetails changed code or message: %+v", withDetails)
	}
}

func TestDomainError_WithCause(t *testing.T) {
	original := NewDomainError("MT-TEST-1000", "original message")
	cause := fmt.Errorf("root cause")
	withCause := original.WithCause(cause)

	if original.Cause != nil {
		t.Error("WithCause should not modify original error")
	}
	if withCause.Cause != cause {
		t.Errorf("Cause = %v, want %v", withCause.Cause, cause)
	}
	if withCause.Code != original.Code {
		t.Errorf("Code = %q, want %q", withCause.Code, original.Code)
	}
}

func TestIsDomainError(t *testing.T) {
	err := ErrPasswordMismatch

	if !IsDomainError(err, "MT-AUTH-4002") {
		t.Error("IsDomainError should return true for matching code")
	}
	if IsDomainError(err, "MT-AUTH-9999") {
		t.Error("IsDomainError should return false for non-matching code")
	}
	if !IsDomainError(err, "") {
		t.Error("IsDomainError with empty code should match any DomainError")
	}
	if IsDomainError(fmt.Errorf("regular error"), "MT-AUTH-4002") {
		t.Error("IsDomainError should return false for non-DomainError")
	}

	wrapped := fmt.Errorf("wrapped: %w", ErrPasswordMismatch)
	if !IsDomainError(wrapped, "MT-AUTH-4002") {
		t.Error("IsDomainError should work with wrapped errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"domain error", ErrInvalidReaction, "MT-POST-4002"},
		{"wrapped domain error", fmt.Errorf("wrapped: %w", ErrPostTextEmpty), "MT-POST-4000"},
		{"regular error", fmt.Errorf("regular error"), ""},
		{"nil error", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err  *DomainError
		code string
	}{
		{ErrPostTextEmpty, "MT-POST-4000"},
		{ErrPostTextTooLong, "MT-POST-4001"},
		{ErrInvalidReaction, "MT-POST-4002"},
		{ErrInvalidReportReason, "MT-POST-4003"},
		{ErrInvalidPostID, "MT-POST-4004"},
		{ErrUsernameRequired, "MT-AUTH-4000"},
		{ErrPasswordRequired, "MT-AUTH-4001"},
		{ErrPasswordMismatch, "MT-AUTH-4002"},
		{ErrEmailInvalid, "MT-AUTH-4003"},
		{ErrHandleNameTooLong, "MT-AUTH-4004"},
		{ErrResetLinkIncomplete, "MT-AUTH-4005"},
		{ErrInvalidArgument, "MT-ARG-1001"},
		{ErrMissingArgument, "MT-ARG-1002"},
	}

	seen := make(map[string]bool)
	for _, tt := range tests {
		if tt.err.Code != tt.code {
			t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
		}
		if seen[tt.code] {
			t.Errorf("duplicate code %q", tt.code)
		}
		seen[tt.code] = true
		if tt.err.Message == "" {
			t.Errorf("%s has empty message", tt.code)
		}
	}
}
