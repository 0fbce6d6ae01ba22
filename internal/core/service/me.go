package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/yndnr/mitaina-cli/internal/core/domain"
)

// MeService covers endpoints scoped to the logged-in user.
type MeService struct {
	api API
}

// NewMeService creates a MeService.
func NewMeService(a API) *MeService {
	return &MeService{api: a}
}

// Profile returns the owner's profile, including email.
func (s *MeService) Profile(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := s.api.Call(ctx, http.MethodGet, "/api/users/me/", nil, &u); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &u, nil
}

// UpdateProfile applies a partial update and returns the new profile.
func (s *MeService) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error) {
	if upd.IsEmpty() {
		return nil, domain.ErrMissingArgument.WithDetails("nothing to update")
	}
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	var u domain.User
	if err := s.api.Call(ctx, http.MethodPatch, "/api/users/me/", upd, &u); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &u, nil
}

// Reactions returns one page of posts the owner reacted to.
func (s *MeService) Reactions(ctx context.Context, reactionType string, page int) (*domain.Page[domain.Post], error) {
	if err := domain.ValidateReactionFilter(reactionType); err != nil {
		return nil, err
	}
	q := pageQuery(page)
	q.Set("type", reactionType)

	p, err := listPage[domain.Post](ctx, s.api, "/api/me/reactions/", q)
	if err != nil {
		return nil, fmt.Errorf("list my %s reactions: %w", reactionType, err)
	}
	return p, nil
}

// Notifications returns one page of the owner's notifications.
func (s *MeService) Notifications(ctx context.Context, page int) (*domain.Page[domain.Notification], error) {
	p, err := listPage[domain.Notification](ctx, s.api, "/api/me/notifications/", pageQuery(page))
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return p, nil
}

// MarkRead marks one notification as read.
func (s *MeService) MarkRead(ctx context.Context, id int64) (*domain.Notification, error) {
	var n domain.Notification
	path := "/api/me/notifications/" + strconv.FormatInt(id, 10) + "/mark_as_read/"
	if err := s.api.Call(ctx, http.MethodPatch, path, nil, &n); err != nil {
		return nil, fmt.Errorf("mark notification %d read: %w", id, err)
	}
	return &n, nil
}

// MarkAllRead marks every notification as read.
func (s *MeService) MarkAllRead(ctx context.Context) (string, error) {
	var res domain.Detail
	if err := s.api.Call(ctx, http.MethodPatch, "/api/me/notifications/mark_all_as_read/", nil, &res); err != nil {
		return "", fmt.Errorf("mark all notifications read: %w", err)
	}
	return res.Detail, nil
}
