package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mitaina-cli/internal/core/domain"
	"github.com/yndnr/mitaina-cli/internal/infra/buildinfo"
	"github.com/yndnr/mitaina-cli/internal/storage"
)

const runtimeKey = "runtime"

// Option customizes the App, mainly for tests.
type Option func(*appOptions)

type appOptions struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	kv     storage.KV
}

// WithIO replaces stdin, stdout and stderr.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(o *appOptions) {
		o.in, o.out, o.errOut = in, out, errOut
	}
}

// WithStorage uses kv instead of opening the configured store. The
// caller keeps ownership of kv.
func WithStorage(kv storage.KV) Option {
	return func(o *appOptions) {
		o.kv = kv
	}
}

// App creates the CLI application.
func App(opts ...Option) *cli.App {
	o := &appOptions{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}

	app := &cli.App{
		Name:      "mitaina-cli",
		Usage:     "Terminal client for mitaina",
		Version:   buildinfo.String(),
		Flags:     globalFlags(),
		Reader:    o.in,
		Writer:    o.out,
		ErrWriter: o.errOut,
		Commands: []*cli.Command{
			OpenCommand(),
			LoginCommand(),
			LogoutCommand(),
			RegisterCommand(),
			PasswordResetCommand(),
			PostCommand(),
			UserCommand(),
			FeedCommand(),
			MeCommand(),
			PageCommand(),
			REPLCommand(),
			ConfigCommand(),
			MetricsCommand(),
			VersionCommand(),
		},
		Metadata: map[string]any{
			"options": o,
		},
		Action: replAction,
		After: func(c *cli.Context) error {
			rt, ok := c.App.Metadata[runtimeKey].(*Runtime)
			if !ok || rt.Interactive() {
				return nil
			}
			delete(c.App.Metadata, runtimeKey)
			return rt.Close()
		},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (default ~/.mitaina/cli.yaml)",
			EnvVars: []string{"MITAINA_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "api-base-url",
			Usage: "API base URL (e.g., http://localhost:8000)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
		&cli.BoolFlag{
			Name:  "ephemeral",
			Usage: "Keep the session in memory only",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Config     string
	APIBaseURL string

	// Output format
	Output string // table, json, yaml
	Wide   bool

	// Other
	Verbose   bool
	Ephemeral bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Config:     c.String("config"),
		APIBaseURL: c.String("api-base-url"),
		Output:     c.String("output"),
		Wide:       c.Bool("wide"),
		Verbose:    c.Bool("verbose"),
		Ephemeral:  c.Bool("ephemeral"),
	}
}

// Overrides turns the set flags into flat config keys.
func (f *GlobalFlags) Overrides() map[string]any {
	m := make(map[string]any)
	if f.APIBaseURL != "" {
		m["api.base_url"] = f.APIBaseURL
	}
	if f.Output != "" {
		m["output.format"] = f.Output
	}
	if f.Wide {
		m["output.wide"] = true
	}
	if f.Verbose {
		m["log.level"] = "debug"
	}
	return m
}

// GetRuntime returns the runtime for this invocation, building it on
// first use. Commands that never touch the backend do not pay for it.
func GetRuntime(c *cli.Context) (*Runtime, error) {
	if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return rt, nil
	}

	o, _ := c.App.Metadata["options"].(*appOptions)
	if o == nil {
		o = &appOptions{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	}

	rt, err := NewRuntime(ParseGlobalFlags(c), o)
	if err != nil {
		return nil, err
	}
	c.App.Metadata[runtimeKey] = rt
	return rt, nil
}

// checkArgs rejects positional arguments beyond max. Flags after the
// first argument are not parsed, so they show up here instead of being
// dropped silently.
func checkArgs(c *cli.Context, max int) error {
	if c.NArg() <= max {
		return nil
	}
	extra := c.Args().Get(max)
	if strings.HasPrefix(extra, "-") {
		return domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("flag %s must come before the arguments", extra))
	}
	return domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("unexpected argument %q", extra))
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
