package domain

import "time"

// User is the public view of an account.
type User struct {
	ID         int64  `json:"id" yaml:"id"`
	Username   string `json:"public_id" yaml:"public_id"`
	HandleName string `json:"handle_name" yaml:"handle_name"`

	// Email is only returned for the account owner.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// DisplayName returns "handle (@username)", or "@username" without a handle.
func (u User) DisplayName() string {
	if u.HandleName == "" {
		return "@" + u.Username
	}
	return u.HandleName + " (@" + u.Username + ")"
}

// ReactionCounts holds per-type reaction totals.
type ReactionCounts struct {
	Like    int `json:"like" yaml:"like"`
	Hatena  int `json:"hatena" yaml:"hatena"`
	Correct int `json:"correct" yaml:"correct"`
}

// Post is a single posted text.
type Post struct {
	ID             int64          `json:"id" yaml:"id"`
	Author         User           `json:"author" yaml:"author"`
	Text           string         `json:"text" yaml:"text"`
	Genre          string         `json:"genre" yaml:"genre"`
	WorkTitle      string         `json:"work_title" yaml:"work_title"`
	PerformerName  string         `json:"performer_name" yaml:"performer_name"`
	LikeCount      int            `json:"like_count" yaml:"like_count"`
	HatenaCount    int            `json:"hatena_count" yaml:"hatena_count"`
	CorrectCount   int            `json:"correct_count" yaml:"correct_count"`
	ReactionCounts ReactionCounts `json:"reaction_counts" yaml:"reaction_counts"`
	CreatedAt      time.Time      `json:"created_at" yaml:"created_at"`
}

// NewPost is the request body for creating a post.
type NewPost struct {
	Text          string `json:"text"`
	Genre         string `json:"genre,omitempty"`
	WorkTitle     string `json:"work_title,omitempty"`
	PerformerName string `json:"performer_name,omitempty"`
}

// Notification types.
const (
	NotificationLiked    = "liked"
	NotificationFollowed = "followed"
)

// Notification tells the owner about activity on their account.
type Notification struct {
	ID        int64     `json:"id" yaml:"id"`
	Actor     User      `json:"actor" yaml:"actor"`
	Type      string    `json:"notification_type" yaml:"notification_type"`
	Post      *Post     `json:"post" yaml:"post,omitempty"`
	IsRead    bool      `json:"is_read" yaml:"is_read"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Follow is a follower -> following edge.
type Follow struct {
	ID        int64     `json:"id" yaml:"id"`
	Follower  User      `json:"follower" yaml:"follower"`
	Following User      `json:"following" yaml:"following"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Page is the page-number pagination envelope. Next and Previous are
// either absolute URLs or path+query references; nil means no page.
type Page[T any] struct {
	Count    int     `json:"count" yaml:"count"`
	Next     *string `json:"next" yaml:"next"`
	Previous *string `json:"previous" yaml:"previous"`
	Results  []T     `json:"results" yaml:"results"`
}

// HasNext reports whether a following page exists.
func (p *Page[T]) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

// HasPrevious reports whether a preceding page exists.
func (p *Page[T]) HasPrevious() bool {
	return p.Previous != nil && *p.Previous != ""
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the sign-up request body.
type Registration struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	HandleName string `json:"handle_name"`
	Password1  string `json:"password1"`
	Password2  string `json:"password2"`
}

// PasswordResetConfirm is the body that completes a reset from an emailed link.
type PasswordResetConfirm struct {
	UID          string `json:"uid"`
	Token        string `json:"token"`
	NewPassword1 string `json:"new_password1"`
	NewPassword2 string `json:"new_password2"`
}

// ProfileUpdate is a partial update of the owner's profile.
// Nil fields are left unchanged.
type ProfileUpdate struct {
	Username   *string `json:"public_id,omitempty"`
	HandleName *string `json:"handle_name,omitempty"`
	Email      *string `json:"email,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Username == nil && u.HandleName == nil && u.Email == nil
}

// ToggleResult is the body returned by react and follow endpoints.
type ToggleResult struct {
	Detail      string `json:"detail" yaml:"detail"`
	IsReacted   *bool  `json:"is_reacted,omitempty" yaml:"is_reacted,omitempty"`
	IsFollowing *bool  `json:"is_following,omitempty" yaml:"is_following,omitempty"`
}

// Active reports the state after the toggle.
func (r ToggleResult) Active() bool {
	switch {
	case r.IsReacted != nil:
		return *r.IsReacted
	case r.IsFollowing != nil:
		return *r.IsFollowing
	}
	return false
}

// Detail is the generic {"detail": "..."} response body.
type Detail struct {
	Detail string `json:"detail" yaml:"detail"`
}
