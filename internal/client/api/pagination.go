package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/yndnr/mitaina-cli/internal/core/domain"
)

// NormalizePageURL reduces an absolute pagination link to its path and
// query. Anything not starting with "http" is returned unchanged.
func NormalizePageURL(link string) (string, error) {
	if !strings.HasPrefix(link, "http") {
		return link, nil
	}

	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse page link: %w", err)
	}

	ref := u.EscapedPath()
	if ref == "" {
		ref = "/"
	}
	if u.RawQuery != "" {
		ref += "?" + u.RawQuery
	}
	return ref, nil
}

// FetchPage issues a GET for a pagination link through the client.
func (c *Client) FetchPage(ctx context.Context, link string) (*http.Response, error) {
	ref, err := NormalizePageURL(link)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, ref)
}

// FetchPageInto fetches a pagination link and decodes the envelope.
func FetchPageInto[T any](ctx context.Context, c *Client, link string) (*domain.Page[T], error) {
	resp, err := c.FetchPage(ctx, link)
	if err != nil {
		return nil, err
	}

	var page domain.Page[T]
	if err := Decode(resp, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
