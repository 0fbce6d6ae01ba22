package router

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Route names used by the default table.
const (
	NameHome          = "home"
	NameLogin         = "login"
	NameRegister      = "register"
	NamePasswordReset = "password-reset"
	NameNewPost       = "new"
	NameMe            = "me"
	NamePost          = "post"
	NameUser          = "user"
)

// Paths with fixed meaning.
const (
	PathHome  = "/"
	PathLogin = "/login"
)

var (
	// ErrNotFound is returned when no route matches a path.
	ErrNotFound = errors.New("router: no route matches path")

	// ErrTooManyRedirects is returned when guards keep redirecting.
	ErrTooManyRedirects = errors.New("router: too many redirects")
)

// Route describes one entry of the route table.
type Route struct {
	// Path is the pattern, e.g. "/p/:id".
	Path string
	Name string

	// RequiresAuth marks routes AuthGuard keeps behind a session.
	RequiresAuth bool

	segments []string
}

// Location is a resolved navigation target.
type Location struct {
	// Path is the requested path without query.
	Path   string
	Route  *Route
	Params map[string]string
	Query  url.Values
}

// FullPath returns Path with the encoded query appended.
func (l *Location) FullPath() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

// Param returns the named path parameter.
func (l *Location) Param(name string) string {
	return l.Params[name]
}

// String implements fmt.Stringer.
func (l *Location) String() string {
	if l == nil {
		return "<none>"
	}
	return l.FullPath()
}

// DefaultRoutes returns the client route table.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Name: NameHome},
		{Path: "/login", Name: NameLogin},
		{Path: "/register", Name: NameRegister},
		{Path: "/password-reset", Name: NamePasswordReset},
		{Path: "/new", Name: NameNewPost, RequiresAuth: true},
		{Path: "/me", Name: NameMe, RequiresAuth: true},
		{Path: "/p/:id", Name: NamePost},
		{Path: "/u/:username", Name: NameUser},
	}
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func compile(r Route) (Route, error) {
	if !strings.HasPrefix(r.Path, "/") {
		return r, fmt.Errorf("router: pattern %q must start with /", r.Path)
	}
	r.segments = splitPath(r.Path)
	seen := make(map[string]bool)
	for _, seg := range r.segments {
		if seg == "" {
			return r, fmt.Errorf("router: pattern %q has an empty segment", r.Path)
		}
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if name == "" || seen[name] {
				return r, fmt.Errorf("router: pattern %q has a bad parameter %q", r.Path, seg)
			}
			seen[name] = true
		}
	}
	return r, nil
}

// match reports whether segs matches the route and returns the params.
func (r *Route) match(segs []string) (map[string]string, bool) {
	if len(segs) != len(r.segments) {
		return nil, false
	}
	params := make(map[string]string)
	for i, pat := range r.segments {
		if name, ok := strings.CutPrefix(pat, ":"); ok {
			v, err := url.PathUnescape(segs[i])
			if err != nil || v == "" {
				return nil, false
			}
			params[name] = v
			continue
		}
		if pat != segs[i] {
			return nil, false
		}
	}
	return params, true
}

// Build fills a pattern with params, e.g. Build("/p/:id", "id", "5").
func Build(pattern string, kv ...string) string {
	values := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		values[kv[i]] = kv[i+1]
	}

	segs := splitPath(pattern)
	for i, seg := range segs {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			segs[i] = url.PathEscape(values[name])
		}
	}
	return "/" + strings.Join(segs, "/")
}
