package router

import (
	"context"

	"github.com/yndnr/mitaina-cli/internal/session"
)

// AuthGuard redirects to /login when the target requires auth and no
// token is stored.
func AuthGuard(r session.Reader) Guard {
	return func(ctx context.Context, to, _ *Location) (string, error) {
		if to.Route.RequiresAuth && !session.HasToken(ctx, r) {
			return PathLogin, nil
		}
		return "", nil
	}
}
