package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yndnr/mitaina-cli/internal/client/api"
	"github.com/yndnr/mitaina-cli/internal/core/domain"
	"github.com/yndnr/mitaina-cli/internal/session"
	"github.com/yndnr/mitaina-cli/internal/telemetry/logger"
)

// API is the part of the client the services depend on.
type API interface {
	// Call sends a request and decodes the JSON response into out.
	Call(ctx context.Context, method, rel string, in, out any) error
}

// Services bundles every service over one API.
type Services struct {
	Auth  *AuthService
	Posts *PostService
	Users *UserService
	Me    *MeService
	Feed  *FeedService
}

// New creates every service over a. Tokens from login and registration
// are written to store.
func New(a API, store session.Store, log logger.Logger) *Services {
	return &Services{
		Auth:  NewAuthService(a, store, log),
		Posts: NewPostService(a),
		Users: NewUserService(a),
		Me:    NewMeService(a),
		Feed:  NewFeedService(a),
	}
}

// PageLink follows a next/previous link from a Page envelope.
func PageLink[T any](ctx context.Context, a API, link string) (*domain.Page[T], error) {
	ref, err := api.NormalizePageURL(link)
	if err != nil {
		return nil, err
	}
	var page domain.Page[T]
	if err := a.Call(ctx, http.MethodGet, ref, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func listPage[T any](ctx context.Context, a API, path string, q url.Values) (*domain.Page[T], error) {
	var page domain.Page[T]
	if err := a.Call(ctx, http.MethodGet, withQuery(path, q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// pageQuery returns a query holding page when page > 1.
func pageQuery(page int) url.Values {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}

func postPath(id int64) string {
	return "/api/posts/" + strconv.FormatInt(id, 10) + "/"
}

func userPath(username string) string {
	return "/api/users/" + url.PathEscape(username) + "/"
}
