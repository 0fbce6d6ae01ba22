package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yndnr/mitaina-cli/internal/core/domain"
)

// PostOrderings are the fields the listing can order by. Prefix "-" for descending.
var PostOrderings = []string{"created_at", "like_count", "hatena_count", "correct_count"}

// PostQuery filters the post listing. Zero values are omitted.
type PostQuery struct {
	Genre    string
	Search   string
	Ordering string
	Page     int
}

func (q PostQuery) values() url.Values {
	v := pageQuery(q.Page)
	if q.Genre != "" {
		v.Set("genre", q.Genre)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Ordering != "" {
		v.Set("ordering", q.Ordering)
	}
	return v
}

// PostService operates on posts.
type PostService struct {
	api API
}

// NewPostService creates a PostService.
func NewPostService(a API) *PostService {
	return &PostService{api: a}
}

// List returns one page of posts, newest first unless ordered otherwise.
func (s *PostService) List(ctx context.Context, q PostQuery) (*domain.Page[domain.Post], error) {
	page, err := listPage[domain.Post](ctx, s.api, "/api/posts/", q.values())
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return page, nil
}

// Get returns a single post.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	var post domain.Post
	if err := s.api.Call(ctx, http.MethodGet, postPath(id), nil, &post); err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &post, nil
}

// Create publishes a post.
func (s *PostService) Create(ctx context.Context, p domain.NewPost) (*domain.Post, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var post domain.Post
	if err := s.api.Call(ctx, http.MethodPost, "/api/posts/", p, &post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

// Delete removes one of the owner's posts.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Call(ctx, http.MethodDelete, postPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return nil
}

// React toggles a reaction on a post.
func (s *PostService) React(ctx context.Context, id int64, reactionType string) (*domain.ToggleResult, error) {
	if err := domain.ValidateReaction(reactionType); err != nil {
		return nil, err
	}

	var res domain.ToggleResult
	body := map[string]string{"reaction_type": reactionType}
	if err := s.api.Call(ctx, http.MethodPost, postPath(id)+"react/", body, &res); err != nil {
		return nil, fmt.Errorf("react to post %d: %w", id, err)
	}
	return &res, nil
}

// Report flags a post for moderation.
func (s *PostService) Report(ctx context.Context, id int64, reason string) (string, error) {
	if err := domain.ValidateReportReason(reason); err != nil {
		return "", err
	}

	var res domain.Detail
	body := map[string]string{"reason": reason}
	if err := s.api.Call(ctx, http.MethodPost, postPath(id)+"report/", body, &res); err != nil {
		return "", fmt.Errorf("report post %d: %w", id, err)
	}
	return res.Detail, nil
}
