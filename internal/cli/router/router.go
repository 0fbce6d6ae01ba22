package router

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Guard runs before a navigation completes. A non-empty redirect sends
// the navigation to that path instead; an error aborts it.
type Guard func(ctx context.Context, to, from *Location) (redirect string, err error)

// MaxRedirects bounds chained guard redirects per navigation.
const MaxRedirects = 10

// Router holds the route table and guards.
type Router struct {
	routes []Route
	guards []Guard
}

// New compiles routes into a Router.
func New(routes []Route) (*Router, error) {
	compiled := make([]Route, 0, len(routes))
	names := make(map[string]bool)
	for _, r := range routes {
		c, err := compile(r)
		if err != nil {
			return nil, err
		}
		if r.Name != "" {
			if names[r.Name] {
				return nil, fmt.Errorf("router: duplicate route name %q", r.Name)
			}
			names[r.Name] = true
		}
		compiled = append(compiled, c)
	}
	return &Router{routes: compiled}, nil
}

// BeforeEach registers a guard. Guards run in registration order.
func (r *Router) BeforeEach(g Guard) {
	r.guards = append(r.guards, g)
}

// Routes returns a copy of the route table.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Match resolves a path (optionally with a query) to a Location.
func (r *Router) Match(rawPath string) (*Location, error) {
	p, rawQuery, _ := strings.Cut(rawPath, "?")
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("router: bad query in %q: %w", rawPath, err)
	}

	segs := splitPath(p)
	for i := range r.routes {
		route := &r.routes[i]
		if params, ok := route.match(segs); ok {
			return &Location{Path: p, Route: route, Params: params, Query: query}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
}

// Resolve matches path and runs the guards, following redirects. The
// second return value reports whether any guard redirected.
func (r *Router) Resolve(ctx context.Context, path string, from *Location) (*Location, bool, error) {
	redirected := false
	for hops := 0; ; hops++ {
		if hops > MaxRedirects {
			return nil, redirected, fmt.Errorf("%w: last target %s", ErrTooManyRedirects, path)
		}

		to, err := r.Match(path)
		if err != nil {
			return nil, redirected, err
		}

		next, err := r.runGuards(ctx, to, from)
		if err != nil {
			return nil, redirected, err
		}
		if next == "" || next == to.FullPath() {
			return to, redirected, nil
		}
		path = next
		redirected = true
	}
}

func (r *Router) runGuards(ctx context.Context, to, from *Location) (string, error) {
	for _, g := range r.guards {
		redirect, err := g(ctx, to, from)
		if err != nil {
			return "", err
		}
		if redirect != "" {
			return redirect, nil
		}
	}
	return "", nil
}
