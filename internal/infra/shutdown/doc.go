// Package shutdown runs cleanup hooks exactly once, either when the
// interactive session ends normally or when SIGINT/SIGTERM arrives.
//
// Usage:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(store.Close)
//	ctx, stop := h.NotifyContext(context.Background())
//	defer stop()
package shutdown
