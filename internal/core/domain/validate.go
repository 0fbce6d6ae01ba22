package domain

import (
	"fmt"
	"net/mail"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Text limits enforced by the backend.
const (
	// MaxPostTextLength leaves room for the suffix the service appends.
	MaxPostTextLength = 136

	// PostSuffix is appended to every post by the service.
	PostSuffix = "みたいな"

	MaxHandleNameLength = 50
)

// Reaction types.
const (
	ReactionLike    = "like"
	ReactionHatena  = "hatena"
	ReactionCorrect = "correct"

	// ReactionCollect is only valid as a listing filter.
	ReactionCollect = "collect"
)

// Report reasons.
const (
	ReportSpam          = "spam"
	ReportInappropriate = "inappropriate"
	ReportQuote         = "quote"
)

// ReactionTypes lists the types a user can toggle on a post.
var ReactionTypes = []string{ReactionLike, ReactionHatena, ReactionCorrect}

// ReactionFilters lists the types accepted when listing reactions.
var ReactionFilters = []string{ReactionLike, ReactionHatena, ReactionCorrect, ReactionCollect}

// ReportReasons lists the accepted report reasons.
var ReportReasons = []string{ReportSpam, ReportInappropriate, ReportQuote}

// Validate checks a post before it is submitted.
func (p NewPost) Validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return ErrPostTextEmpty
	}
	if n := utf8.RuneCountInString(p.Text); n > MaxPostTextLength {
		return ErrPostTextTooLong.WithDetails(fmt.Sprintf("%d > %d characters", n, MaxPostTextLength))
	}
	return nil
}

// Validate checks the login fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return ErrUsernameRequired
	}
	if c.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// Validate checks a registration before it is submitted.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return ErrUsernameRequired
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if utf8.RuneCountInString(r.HandleName) > MaxHandleNameLength {
		return ErrHandleNameTooLong
	}
	if r.Password1 == "" {
		return ErrPasswordRequired
	}
	if r.Password1 != r.Password2 {
		return ErrPasswordMismatch
	}
	return nil
}

// Validate checks a reset confirmation before it is submitted.
func (c PasswordResetConfirm) Validate() error {
	if c.UID == "" || c.Token == "" {
		return ErrResetLinkIncomplete
	}
	if c.NewPassword1 == "" {
		return ErrPasswordRequired
	}
	if c.NewPassword1 != c.NewPassword2 {
		return ErrPasswordMismatch
	}
	return nil
}

// Validate checks the fields that are set.
func (u ProfileUpdate) Validate() error {
	if u.Username != nil && strings.TrimSpace(*u.Username) == "" {
		return ErrUsernameRequired
	}
	if u.Email != nil {
		if err := ValidateEmail(*u.Email); err != nil {
			return err
		}
	}
	if u.HandleName != nil && utf8.RuneCountInString(*u.HandleName) > MaxHandleNameLength {
		return ErrHandleNameTooLong
	}
	return nil
}

// ValidateEmail checks addr is a bare address.
func ValidateEmail(addr string) error {
	if addr == "" {
		return ErrEmailInvalid
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return ErrEmailInvalid.WithDetails(addr)
	}
	return nil
}

// ValidateReaction checks t is a type that can be toggled on a post.
func ValidateReaction(t string) error {
	if !slices.Contains(ReactionTypes, t) {
		return ErrInvalidReaction.WithDetails(fmt.Sprintf("%q (want one of %s)", t, strings.Join(ReactionTypes, ", ")))
	}
	return nil
}

// ValidateReactionFilter checks t is accepted by reaction listings.
func ValidateReactionFilter(t string) error {
	if !slices.Contains(ReactionFilters, t) {
		return ErrInvalidReaction.WithDetails(fmt.Sprintf("%q (want one of %s)", t, strings.Join(ReactionFilters, ", ")))
	}
	return nil
}

// ValidateReportReason checks reason is an accepted report reason.
func ValidateReportReason(reason string) error {
	if !slices.Contains(ReportReasons, reason) {
		return ErrInvalidReportReason.WithDetails(fmt.Sprintf("%q (want one of %s)", reason, strings.Join(ReportReasons, ", ")))
	}
	return nil
}

// ParsePostID parses a post id from a path segment or argument.
func ParsePostID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidPostID.WithDetails(s)
	}
	return id, nil
}
