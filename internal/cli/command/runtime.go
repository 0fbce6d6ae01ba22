package command

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mitaina-cli/internal/cli/config"
	"github.com/yndnr/mitaina-cli/internal/cli/output"
	"github.com/yndnr/mitaina-cli/internal/cli/router"
	"github.com/yndnr/mitaina-cli/internal/cli/view"
	"github.com/yndnr/mitaina-cli/internal/client/api"
	"github.com/yndnr/mitaina-cli/internal/core/service"
	"github.com/yndnr/mitaina-cli/internal/session"
	"github.com/yndnr/mitaina-cli/internal/storage"
	"github.com/yndnr/mitaina-cli/internal/telemetry/logger"
	"github.com/yndnr/mitaina-cli/internal/telemetry/metric"
)

// requestTimeout bounds one non-interactive command.
const requestTimeout = 30 * time.Second

// Runtime holds everything a command needs.
type Runtime struct {
	ConfigPath string
	Log        logger.Logger
	KV         storage.KV
	Session    session.Store
	Metrics    *metric.Registry
	API        *api.Client
	Services   *service.Services
	Router     *router.Router
	Nav        *router.Navigator
	Screens    *view.Screens
	Prompter   *view.LinePrompter
	Out        io.Writer
	Err        io.Writer

	mu     sync.RWMutex
	config *config.CLIConfig

	ownsKV      bool
	interactive atomic.Bool
	expired     atomic.Bool
	closeOnce   sync.Once
	closeErr    error
}

// NewRuntime loads configuration and wires the client stack.
func NewRuntime(flags *GlobalFlags, o *appOptions) (*Runtime, error) {
	cfg, err := config.Load(flags.Config, flags.Overrides())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logCfg := cfg.Log
	logCfg.Output = o.errOut
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	rt := &Runtime{
		ConfigPath: flags.Config,
		Log:        log,
		Metrics:    metric.NewRegistry(),
		Out:        o.out,
		Err:        o.errOut,
		config:     cfg,
	}
	if rt.ConfigPath == "" {
		rt.ConfigPath = config.DefaultConfigPath()
	}

	switch {
	case o.kv != nil:
		rt.KV = o.kv
	case flags.Ephemeral:
		rt.KV = storage.NewMemoryKV()
		rt.ownsKV = true
	default:
		kv, err := storage.NewBadgerKV(cfg.Storage, log.Slog())
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		rt.KV = kv
		rt.ownsKV = true
	}
	rt.Session = session.NewKVStore(rt.KV)

	timeout, _ := cfg.API.TimeoutDuration()
	rt.API, err = api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: timeout,
		CAFile:  cfg.API.CAFile,
	}, api.Options{
		Session:          rt.Session,
		OnSessionExpired: rt.sessionExpired,
		Logger:           log,
		Metrics:          rt.Metrics,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Services = service.New(rt.API, rt.Session, log)

	rt.Router, err = router.New(router.DefaultRoutes())
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Router.BeforeEach(router.AuthGuard(rt.Session))
	rt.Nav = router.NewNavigator(rt.Router, rt.Metrics)
	rt.Nav.AfterEach(func(_ context.Context, to, from *router.Location) {
		log.Debug("navigated", "from", from.String(), "to", to.String())
	})

	rt.Prompter = view.NewLinePrompter(o.in, o.out)
	rt.Screens = view.New(rt.Services, rt.Nav, rt.newPrinter(cfg.Output.Format, cfg.Output.Wide), rt.Prompter)

	log.Debug("runtime ready", "base_url", cfg.API.BaseURL, "config", rt.ConfigPath)
	return rt, nil
}

// sessionExpired runs after a 401 cleared the token. It moves the
// navigator to the login page with a fresh history.
func (rt *Runtime) sessionExpired(ctx context.Context) {
	rt.expired.Store(true)
	if _, err := rt.Nav.Reload(ctx, router.PathLogin); err != nil {
		rt.Log.Warn("redirect to login failed", "error", err)
	}
	fmt.Fprintln(rt.Err, "Session expired. Please log in again.")
}

// TakeExpired reports whether a 401 happened since the last call.
func (rt *Runtime) TakeExpired() bool {
	return rt.expired.Swap(false)
}

// Config returns the current configuration.
func (rt *Runtime) Config() *config.CLIConfig {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.config
}

// SetConfig swaps the configuration and refreshes the view printer.
// The API client keeps its original base URL.
func (rt *Runtime) SetConfig(cfg *config.CLIConfig) {
	rt.mu.Lock()
	old := rt.config
	rt.config = cfg
	rt.mu.Unlock()

	if old.API.BaseURL != cfg.API.BaseURL {
		rt.Log.Warn("api.base_url change needs a restart", "current", old.API.BaseURL)
	}
	rt.Screens.SetPrinter(rt.newPrinter(cfg.Output.Format, cfg.Output.Wide))
}

// Printer returns a printer honoring --output and --wide on c over the
// configured defaults.
func (rt *Runtime) Printer(c *cli.Context) (*output.Printer, error) {
	cfg := rt.Config()
	format, wide := cfg.Output.Format, cfg.Output.Wide
	if c != nil {
		if c.IsSet("output") {
			format = c.String("output")
		}
		if c.IsSet("wide") {
			wide = c.Bool("wide")
		}
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(rt.Out, f, wide), nil
}

func (rt *Runtime) newPrinter(format string, wide bool) *output.Printer {
	f, err := output.ParseFormat(format)
	if err != nil {
		f = output.FormatTable
	}
	return output.NewPrinter(rt.Out, f, wide)
}

// RequestContext bounds a non-interactive command.
func (rt *Runtime) RequestContext(c *cli.Context) (context.Context, context.CancelFunc) {
	parent := c.Context
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, requestTimeout)
}

// SetInteractive marks the runtime as owned by the REPL so nested
// command runs leave it open.
func (rt *Runtime) SetInteractive(on bool) {
	rt.interactive.Store(on)
}

// Interactive reports whether the REPL owns the runtime.
func (rt *Runtime) Interactive() bool {
	return rt.interactive.Load()
}

// Close releases storage. It is safe to call more than once.
func (rt *Runtime) Close() error {
	rt.closeOnce.Do(func() {
		if rt.ownsKV && rt.KV != nil {
			rt.closeErr = rt.KV.Close()
		}
	})
	return rt.closeErr
}
