package domain

import (
	"errors"
	"fmt"
)

// DomainError is a locally detected error with a stable code.
type DomainError struct {
	Code    string // Error code (e.g., "MT-POST-4001")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, any DomainError matches.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Post errors.
var (
	// ErrPostTextEmpty indicates a post without text.
	ErrPostTextEmpty = NewDomainError("MT-POST-4000", "post text is required")

	// ErrPostTextTooLong indicates the text exceeds MaxPostTextLength runes.
	ErrPostTextTooLong = NewDomainError("MT-POST-4001", "post text too long")

	// ErrInvalidReaction indicates an unknown reaction type.
	ErrInvalidReaction = NewDomainError("MT-POST-4002", "invalid reaction type")

	// ErrInvalidReportReason indicates an unknown report reason.
	ErrInvalidReportReason = NewDomainError("MT-POST-4003", "invalid report reason")

	// ErrInvalidPostID indicates a post id that is not a positive integer.
	ErrInvalidPostID = NewDomainError("MT-POST-4004", "invalid post id")
)

// Account errors.
var (
	// ErrUsernameRequired indicates a missing username.
	ErrUsernameRequired = NewDomainError("MT-AUTH-4000", "username is required")

	// ErrPasswordRequired indicates a missing password.
	ErrPasswordRequired = NewDomainError("MT-AUTH-4001", "password is required")

	// ErrPasswordMismatch indicates the two password fields differ.
	ErrPasswordMismatch = NewDomainError("MT-AUTH-4002", "passwords do not match")

	// ErrEmailInvalid indicates a missing or malformed email address.
	ErrEmailInvalid = NewDomainError("MT-AUTH-4003", "invalid email address")

	// ErrHandleNameTooLong indicates handle_name exceeds MaxHandleNameLength.
	ErrHandleNameTooLong = NewDomainError("MT-AUTH-4004", "handle name too long")

	// ErrResetLinkIncomplete indicates a password reset confirm without uid or token.
	ErrResetLinkIncomplete = NewDomainError("MT-AUTH-4005", "password reset link is missing uid or token")
)

// Argument errors.
var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("MT-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("MT-ARG-1002", "missing required argument")
)
