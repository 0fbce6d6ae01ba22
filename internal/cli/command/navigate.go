package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mitaina-cli/internal/cli/config"
	"github.com/yndnr/mitaina-cli/internal/cli/repl"
	"github.com/yndnr/mitaina-cli/internal/cli/router"
	"github.com/yndnr/mitaina-cli/internal/core/domain"
	"github.com/yndnr/mitaina-cli/internal/core/service"
	"github.com/yndnr/mitaina-cli/internal/infra/buildinfo"
	"github.com/yndnr/mitaina-cli/internal/infra/confloader"
	"github.com/yndnr/mitaina-cli/internal/infra/shutdown"
)

// shutdownTimeout bounds the REPL shutdown hooks.
const shutdownTimeout = 5 * time.Second

// OpenCommand returns the open command.
func OpenCommand() *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Render a page, e.g. /, /p/12, /u/taro, /me",
		ArgsUsage: "PATH",
		Action:    open,
	}
}

func open(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	path := c.Args().First()
	if path == "" {
		path = router.PathHome
	}
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}
	_, err = rt.Screens.Open(c.Context, path)
	return err
}

// PageCommand returns the page command.
func PageCommand() *cli.Command {
	return &cli.Command{
		Name:      "page",
		Usage:     "Fetch a next/prev link from an earlier listing",
		ArgsUsage: "[options] URL",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Value: "auto",
				Usage: "What the link lists: auto, posts, notifications",
			},
		},
		Action: page,
	}
}

func page(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	link := c.Args().First()
	if link == "" {
		return domain.ErrMissingArgument.WithDetails("page URL")
	}
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	kind := c.String("kind")
	if kind == "auto" {
		kind = "posts"
		if strings.Contains(link, "/notifications/") {
			kind = "notifications"
		}
	}

	ctx, cancel := rt.RequestContext(c)
	defer cancel()

	switch kind {
	case "posts":
		p, err := service.PageLink[domain.Post](ctx, rt.API, link)
		if err != nil {
			return err
		}
		return printPosts(rt, c, p)
	case "notifications":
		p, err := service.PageLink[domain.Notification](ctx, rt.API, link)
		if err != nil {
			return err
		}
		return printNotifications(rt, c, p)
	default:
		return domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("kind %q", kind))
	}
}

// REPLCommand returns the repl command.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:      "repl",
		Usage:     "Start interactive mode (the default with no command)",
		ArgsUsage: "[PATH]",
		Action:    replAction,
	}
}

func replAction(c *cli.Context) error {
	start := c.Args().First()
	if start == "" {
		start = router.PathHome
	}
	if !strings.HasPrefix(start, "/") {
		return fmt.Errorf("unknown command %q", start)
	}

	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}
	if rt.Interactive() {
		return errors.New("already in interactive mode")
	}
	rt.SetInteractive(true)
	defer rt.SetInteractive(false)

	cfg := rt.Config()
	hist := repl.NewHistory(cfg.REPL.HistoryFile, cfg.REPL.HistorySize)
	if err := hist.Load(); err != nil {
		rt.Log.Warn("load history failed", "error", err)
	}

	// Hooks run in reverse: stop watching, save history, close storage.
	h := shutdown.NewHandler(shutdownTimeout)
	h.OnShutdown(func(context.Context) error { return rt.Close() })
	h.OnShutdown(func(context.Context) error { return hist.Save() })
	if w := watchConfig(rt, ParseGlobalFlags(c)); w != nil {
		h.OnShutdown(func(context.Context) error { return w.Stop() })
	}

	ctx, stop := h.NotifyContext(c.Context)
	defer stop()

	app := c.App
	r := repl.New(repl.Config{
		Input:  rt.Prompter,
		Output: rt.Out,
		Pages:  rt.Screens,
		Exec: func(ctx context.Context, args []string) error {
			return app.RunContext(ctx, append([]string{app.Name}, args...))
		},
		History:   hist,
		Completer: repl.NewCompleter(commandWords(app.Commands), routePaths(rt.Router)),
		Prompt: func() string {
			path := router.PathHome
			if loc := rt.Nav.Current(); loc != nil {
				path = loc.FullPath()
			}
			return "mitaina " + path + "> "
		},
		AfterLine: func(ctx context.Context) { showIfExpired(ctx, rt) },
	})

	fmt.Fprintf(rt.Out, "mitaina-cli %s. Type help for help, exit to leave.\n", buildinfo.Version)
	if _, err := rt.Screens.Open(ctx, start); err != nil {
		fmt.Fprintf(rt.Out, "error: %v\n", err)
	}
	showIfExpired(ctx, rt)

	err = r.Run(ctx)
	if serr := h.Shutdown(); err == nil {
		err = serr
	}
	return err
}

// showIfExpired renders the login page left current by a 401.
func showIfExpired(ctx context.Context, rt *Runtime) {
	if !rt.TakeExpired() {
		return
	}
	if _, err := rt.Screens.Show(ctx); err != nil {
		fmt.Fprintf(rt.Out, "error: %v\n", err)
	}
}

// watchConfig reloads the output settings when the config file changes.
func watchConfig(rt *Runtime, flags *GlobalFlags) *confloader.Watcher {
	path := rt.ConfigPath
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		rt.Log.Warn("config watch disabled", "error", err)
		return nil
	}
	w, err := confloader.NewWatcher(path, rt.Log.Slog())
	if err != nil {
		rt.Log.Warn("config watch disabled", "error", err)
		return nil
	}

	w.OnChange(func(string) {
		cfg, err := config.Load(path, flags.Overrides())
		if err != nil {
			rt.Log.Warn("config reload failed", "error", err)
			return
		}
		rt.SetConfig(cfg)
		rt.Log.Info("config reloaded", "path", path)
	})
	w.StartAsync()
	return w
}

// commandWords lists top-level commands and "group sub" pairs.
func commandWords(cmds []*cli.Command) []string {
	var words []string
	for _, cmd := range cmds {
		if cmd.Hidden {
			continue
		}
		words = append(words, cmd.Name)
		for _, sub := range cmd.Subcommands {
			if !sub.Hidden {
				words = append(words, cmd.Name+" "+sub.Name)
			}
		}
	}
	return words
}

func routePaths(r *router.Router) []string {
	routes := r.Routes()
	paths := make([]string, 0, len(routes))
	for _, route := range routes {
		paths = append(paths, route.Path)
	}
	return paths
}
