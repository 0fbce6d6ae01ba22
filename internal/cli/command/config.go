package command

import (
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mitaina-cli/internal/cli/config"
	"github.com/yndnr/mitaina-cli/internal/cli/output"
	"github.com/yndnr/mitaina-cli/internal/core/domain"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Local configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:   "path",
				Usage:  "Print the config file path",
				Action: configPath,
			},
			{
				Name:        "set",
				Usage:       "Write one setting to the config file",
				ArgsUsage:   "KEY VALUE",
				Description: "Keys:\n   " + strings.Join(config.Keys(), "\n   "),
				Action:      configSet,
			},
		},
	}
}

func configFile(c *cli.Context) string {
	if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return rt.ConfigPath
	}
	if p := ParseGlobalFlags(c).Config; p != "" {
		return p
	}
	return config.DefaultConfigPath()
}

func appOut(c *cli.Context) io.Writer {
	if o, ok := c.App.Metadata["options"].(*appOptions); ok && o.out != nil {
		return o.out
	}
	return os.Stdout
}

// localPrinter builds a printer without the runtime, so a broken
// config can still be inspected and fixed.
func localPrinter(c *cli.Context, cfg *config.CLIConfig) (*output.Printer, error) {
	format := cfg.Output.Format
	if c.IsSet("output") {
		format = c.String("output")
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(appOut(c), f, cfg.Output.Wide || c.Bool("wide")), nil
}

func configShow(c *cli.Context) error {
	flags := ParseGlobalFlags(c)
	cfg, err := config.Load(configFile(c), flags.Overrides())
	if err != nil {
		return err
	}

	p, err := localPrinter(c, cfg)
	if err != nil {
		return err
	}

	flat := cfg.Flatten()
	table := output.NewTable("KEY", "VALUE")
	for _, k := range config.Keys() {
		table.AddRow(k, flat[k])
	}
	table.Footer = "file: " + configFile(c)
	return p.Print(cfg, table)
}

func configPath(c *cli.Context) error {
	_, err := io.WriteString(appOut(c), configFile(c)+"\n")
	return err
}

func configSet(c *cli.Context) error {
	if c.NArg() != 2 {
		return domain.ErrMissingArgument.WithDetails("want KEY VALUE")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)

	path := configFile(c)
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}

	p, err := localPrinter(c, cfg)
	if err != nil {
		return err
	}
	p.Message("%s = %s (%s)", key, value, path)
	return nil
}
