package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewPost_Validate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"ascii", "hello", nil},
		{"exactly limit in runes", strings.Repeat("あ", MaxPostTextLength), nil},
		{"one over limit", strings.Repeat("あ", MaxPostTextLength+1), ErrPostTextTooLong},
		{"empty", "", ErrPostTextEmpty},
		{"whitespace only", "  \n\t", ErrPostTextEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPost{Text: tt.text}.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistration_Validate(t *testing.T) {
	valid := Registration{
		Username:   "alice",
		Email:      "alice@example.com",
		HandleName: "Alice",
		Password1:  "s3cret-pass",
		Password2:  "s3cret-pass",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(r *Registration)
		wantErr error
	}{
		{"missing username", func(r *Registration) { r.Username = " " }, ErrUsernameRequired},
		{"bad email", func(r *Registration) { r.Email = "not-an-email" }, ErrEmailInvalid},
		{"email with display name", func(r *Registration) { r.Email = "Alice <alice@example.com>" }, ErrEmailInvalid},
		{"long handle", func(r *Registration) { r.HandleName = strings.Repeat("x", MaxHandleNameLength+1) }, ErrHandleNameTooLong},
		{"missing password", func(r *Registration) { r.Password1, r.Password2 = "", "" }, ErrPasswordRequired},
		{"mismatch", func(r *Registration) { r.Password2 = "other" }, ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPasswordResetConfirm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      PasswordResetConfirm
		wantErr error
	}{
		{"ok", PasswordResetConfirm{UID: "MQ", Token: "abc", NewPassword1: "p", NewPassword2: "p"}, nil},
		{"missing uid", PasswordResetConfirm{Token: "abc", NewPassword1: "p", NewPassword2: "p"}, ErrResetLinkIncomplete},
		{"missing token", PasswordResetConfirm{UID: "MQ", NewPassword1: "p", NewPassword2: "p"}, ErrResetLinkIncomplete},
		{"mismatch", PasswordResetConfirm{UID: "MQ", Token: "abc", NewPassword1: "p", NewPassword2: "q"}, ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCredentials_Validate(t *testing.T) {
	if err := (Credentials{Username: "bob", Password: "pw"}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := (Credentials{Password: "pw"}).Validate(); !errors.Is(err, ErrUsernameRequired) {
		t.Errorf("Validate() error = %v, want %v", err, ErrUsernameRequired)
	}
	if err := (Credentials{Username: "bob"}).Validate(); !errors.Is(err, ErrPasswordRequired) {
		t.Errorf("Validate() error = %v, want %v", err, ErrPasswordRequired)
	}
}

func TestProfileUpdate(t *testing.T) {
	if !(ProfileUpdate{}).IsEmpty() {
		t.Error("zero ProfileUpdate should be empty")
	}

	handle := "New Name"
	u := ProfileUpdate{HandleName: &handle}
	if u.IsEmpty() {
		t.Error("ProfileUpdate with handle should not be empty")
	}
	if err := u.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	bad := "nope"
	if err := (ProfileUpdate{Email: &bad}).Validate(); !errors.Is(err, ErrEmailInvalid) {
		t.Errorf("Validate() error = %v, want %v", err, ErrEmailInvalid)
	}
}

func TestValidateReaction(t *testing.T) {
	for _, rt := range ReactionTypes {
		if err := ValidateReaction(rt); err != nil {
			t.Errorf("ValidateReaction(%q) error = %v", rt, err)
		}
	}
	if err := ValidateReaction(ReactionCollect); !errors.Is(err, ErrInvalidReaction) {
		t.Errorf("ValidateReaction(collect) error = %v, want %v", err, ErrInvalidReaction)
	}
	if err := ValidateReactionFilter(ReactionCollect); err != nil {
		t.Errorf("ValidateReactionFilter(collect) error = %v", err)
	}
	if err := ValidateReactionFilter("love"); !errors.Is(err, ErrInvalidReaction) {
		t.Errorf("ValidateReactionFilter(love) error = %v, want %v", err, ErrInvalidReaction)
	}
}

func TestValidateReportReason(t *testing.T) {
	for _, r := range ReportReasons {
		if err := ValidateReportReason(r); err != nil {
			t.Errorf("ValidateReportReason(%q) error = %v", r, err)
		}
	}
	if err := ValidateReportReason("boring"); !errors.Is(err, ErrInvalidReportReason) {
		t.Errorf("ValidateReportReason(boring) error = %v, want %v", err, ErrInvalidReportReason)
	}
}

func TestParsePostID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParsePostID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePostID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePostID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestUser_DisplayName(t *testing.T) {
	if got := (User{Username: "bob"}).DisplayName(); got != "@bob" {
		t.Errorf("DisplayName() = %q", got)
	}
	if got := (User{Username: "bob", HandleName: "Bob"}).DisplayName(); got != "Bob (@bob)" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestPage_Links(t *testing.T) {
	next := "/api/posts/?page=2"
	empty := ""
	p := Page[Post]{Next: &next, Previous: &empty}
	if !p.HasNext() {
		t.Error("HasNext() = false, want true")
	}
	if p.HasPrevious() {
		t.Error("HasPrevious() = true for empty link")
	}
	if (&Page[Post]{}).HasNext() {
		t.Error("HasNext() = true for nil link")
	}
}

func TestToggleResult_Active(t *testing.T) {
	yes, no := true, false
	if !(ToggleResult{IsReacted: &yes}).Active() {
		t.Error("reacted result should be active")
	}
	if (ToggleResult{IsFollowing: &no}).Active() {
		t.Error("unfollowed result should be inactive")
	}
	if (ToggleResult{}).Active() {
		t.Error("empty result should be inactive")
	}
}
