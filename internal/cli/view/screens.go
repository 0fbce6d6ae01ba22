package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yndnr/mitaina-cli/internal/cli/output"
	"github.com/yndnr/mitaina-cli/internal/cli/router"
	"github.com/yndnr/mitaina-cli/internal/core/service"
)

// maxChain bounds how many view-initiated navigations one Open follows.
const maxChain = 5

// View renders loc. A non-empty next is the path to navigate to afterwards.
type View func(ctx context.Context, loc *router.Location) (next string, err error)

// Screens maps route names to views and drives navigation between them.
type Screens struct {
	svc    *service.Services
	nav    *router.Navigator
	prompt Prompter

	mu      sync.RWMutex
	printer *output.Printer

	views map[string]View
}

// New creates the views for the default route table.
func New(svc *service.Services, nav *router.Navigator, printer *output.Printer, prompt Prompter) *Screens {
	s := &Screens{
		svc:     svc,
		nav:     nav,
		prompt:  prompt,
		printer: printer,
	}
	s.views = map[string]View{
		router.NameHome:          s.home,
		router.NameLogin:         s.login,
		router.NameRegister:      s.register,
		router.NamePasswordReset: s.passwordReset,
		router.NameNewPost:       s.newPost,
		router.NameMe:            s.me,
		router.NamePost:          s.post,
		router.NameUser:          s.user,
	}
	return s
}

// Printer returns the current printer.
func (s *Screens) Printer() *output.Printer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.printer
}

// SetPrinter swaps the printer, e.g. after a config reload.
func (s *Screens) SetPrinter(p *output.Printer) {
	s.mu.Lock()
	s.printer = p
	s.mu.Unlock()
}

// Open pushes path and renders where the navigation lands, following
// any navigation the view asks for.
func (s *Screens) Open(ctx context.Context, path string) (*router.Location, error) {
	loc, err := s.nav.Push(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.follow(ctx, loc)
}

// Back returns to the previous location and renders it.
func (s *Screens) Back(ctx context.Context) (*router.Location, error) {
	loc, err := s.nav.Back(ctx)
	if err != nil {
		return nil, err
	}
	return s.follow(ctx, loc)
}

// Show renders the current location without navigating.
func (s *Screens) Show(ctx context.Context) (*router.Location, error) {
	loc := s.nav.Current()
	if loc == nil {
		return s.Open(ctx, router.PathHome)
	}
	return s.follow(ctx, loc)
}

func (s *Screens) follow(ctx context.Context, loc *router.Location) (*router.Location, error) {
	for i := 0; ; i++ {
		next, err := s.Render(ctx, loc)
		if err != nil || next == "" {
			return loc, err
		}
		if i == maxChain {
			return loc, fmt.Errorf("view: navigation chain from %s too long", loc)
		}
		if loc, err = s.nav.Push(ctx, next); err != nil {
			return nil, err
		}
	}
}

// Render runs the view for loc.
func (s *Screens) Render(ctx context.Context, loc *router.Location) (string, error) {
	if loc == nil || loc.Route == nil {
		return "", errors.New("view: no location")
	}
	v, ok := s.views[loc.Route.Name]
	if !ok {
		return "", fmt.Errorf("view: no view for route %q", loc.Route.Name)
	}
	return v(ctx, loc)
}
