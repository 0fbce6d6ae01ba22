package service

import (
	"context"
	"fmt"

	"github.com/yndnr/mitaina-cli/internal/core/domain"
)

// FeedService lists posts by followed users.
type FeedService struct {
	api API
}

// NewFeedService creates a FeedService.
func NewFeedService(a API) *FeedService {
	return &FeedService{api: a}
}

// List returns one page of the owner's feed.
func (s *FeedService) List(ctx context.Context, page int) (*domain.Page[domain.Post], error) {
	p, err := listPage[domain.Post](ctx, s.api, "/api/feed/", pageQuery(page))
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	return p, nil
}
