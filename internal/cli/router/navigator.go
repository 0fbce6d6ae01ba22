package router

import (
	"context"
	"errors"
	"sync"

	"github.com/yndnr/mitaina-cli/internal/telemetry/metric"
)

// ErrNoHistory is returned by Back when there is nothing to go back to.
var ErrNoHistory = errors.New("router: no previous location")

// AfterHook runs once a navigation has completed.
type AfterHook func(ctx context.Context, to, from *Location)

// Navigator tracks the current location and history over a Router.
type Navigator struct {
	router  *Router
	metrics *metric.Registry

	mu      sync.Mutex
	current *Location
	history []*Location
	after   []AfterHook
}

// NewNavigator creates a Navigator with no current location.
func NewNavigator(r *Router, m *metric.Registry) *Navigator {
	return &Navigator{router: r, metrics: m}
}

// Router returns the underlying Router.
func (n *Navigator) Router() *Router {
	return n.router
}

// AfterEach registers a hook run after every completed navigation.
func (n *Navigator) AfterEach(h AfterHook) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.after = append(n.after, h)
}

// Current returns the current location, or nil before the first navigation.
func (n *Navigator) Current() *Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Depth returns the number of entries Back can return to.
func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.history)
}

// Push navigates to path and records the previous location in history.
func (n *Navigator) Push(ctx context.Context, path string) (*Location, error) {
	return n.navigate(ctx, path, func(prev *Location) {
		if prev != nil {
			n.history = append(n.history, prev)
		}
	})
}

// Replace navigates to path without adding a history entry.
func (n *Navigator) Replace(ctx context.Context, path string) (*Location, error) {
	return n.navigate(ctx, path, nil)
}

// Reload drops all history and navigates to path, the way a full page
// load would.
func (n *Navigator) Reload(ctx context.Context, path string) (*Location, error) {
	return n.navigate(ctx, path, func(*Location) {
		n.history = nil
	})
}

// Back returns to the previous location. Guards run again, so a page
// that now requires a session redirects.
func (n *Navigator) Back(ctx context.Context) (*Location, error) {
	n.mu.Lock()
	if len(n.history) == 0 {
		n.mu.Unlock()
		return nil, ErrNoHistory
	}
	prev := n.history[len(n.history)-1]
	n.mu.Unlock()

	return n.navigate(ctx, prev.FullPath(), func(*Location) {
		if len(n.history) > 0 {
			n.history = n.history[:len(n.history)-1]
		}
	})
}

// navigate resolves path; on success commit runs under the lock before
// the location changes, then the after hooks run outside it.
func (n *Navigator) navigate(ctx context.Context, path string, commit func(prev *Location)) (*Location, error) {
	from := n.Current()

	to, redirected, err := n.router.Resolve(ctx, path, from)
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	if commit != nil {
		commit(n.current)
	}
	n.current = to
	hooks := make([]AfterHook, len(n.after))
	copy(hooks, n.after)
	n.mu.Unlock()

	n.metrics.ObserveNavigation(to.Route.Name, redirected)
	for _, h := range hooks {
		h(ctx, to, from)
	}
	return to, nil
}
