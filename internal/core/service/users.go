package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yndnr/mitaina-cli/internal/core/domain"
)

// UserService reads public profiles and toggles follows.
type UserService struct {
	api API
}

// NewUserService creates a UserService.
func NewUserService(a API) *UserService {
	return &UserService{api: a}
}

// Get returns a user's public profile.
func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	var u domain.User
	if err := s.api.Call(ctx, http.MethodGet, userPath(username), nil, &u); err != nil {
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}
	return &u, nil
}

// Posts returns one page of a user's posts.
func (s *UserService) Posts(ctx context.Context, username string, page int) (*domain.Page[domain.Post], error) {
	p, err := listPage[domain.Post](ctx, s.api, userPath(username)+"posts/", pageQuery(page))
	if err != nil {
		return nil, fmt.Errorf("list posts of %s: %w", username, err)
	}
	return p, nil
}

// Followers lists who follows username.
func (s *UserService) Followers(ctx context.Context, username string) ([]domain.Follow, error) {
	var out []domain.Follow
	if err := s.api.Call(ctx, http.MethodGet, userPath(username)+"followers/", nil, &out); err != nil {
		return nil, fmt.Errorf("list followers of %s: %w", username, err)
	}
	return out, nil
}

// Following lists who username follows.
func (s *UserService) Following(ctx context.Context, username string) ([]domain.Follow, error) {
	var out []domain.Follow
	if err := s.api.Call(ctx, http.MethodGet, userPath(username)+"following/", nil, &out); err != nil {
		return nil, fmt.Errorf("list following of %s: %w", username, err)
	}
	return out, nil
}

// Reactions returns one page of posts username reacted to with reactionType.
func (s *UserService) Reactions(ctx context.Context, username, reactionType string, page int) (*domain.Page[domain.Post], error) {
	if err := domain.ValidateReactionFilter(reactionType); err != nil {
		return nil, err
	}
	q := pageQuery(page)
	q.Set("type", reactionType)

	p, err := listPage[domain.Post](ctx, s.api, userPath(username)+"reactions/", q)
	if err != nil {
		return nil, fmt.Errorf("list %s reactions of %s: %w", reactionType, username, err)
	}
	return p, nil
}

// Follow toggles following username.
func (s *UserService) Follow(ctx context.Context, username string) (*domain.ToggleResult, error) {
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	var res domain.ToggleResult
	if err := s.api.Call(ctx, http.MethodPost, userPath(username)+"follow/", nil, &res); err != nil {
		return nil, fmt.Errorf("follow %s: %w", username, err)
	}
	return &res, nil
}
