package command

import (
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/mitaina-cli/internal/cli/config"
	"github.com/yndnr/mitaina-cli/internal/cli/output"
	"github.com/yndnr/mitaina-cli/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show build information",
		Action: version,
	}
}

func version(c *cli.Context) error {
	p, err := localPrinter(c, config.Default())
	if err != nil {
		return err
	}
	info := buildinfo.Get()
	if p.Human() {
		p.Message("mitaina-cli %s (%s)", buildinfo.String(), info.GoVersion)
		return nil
	}
	return p.Print(info, nil)
}

// MetricsCommand returns the metrics command.
func MetricsCommand() *cli.Command {
	return &cli.Command{
		Name:   "metrics",
		Usage:  "Show client request metrics for this process",
		Action: metrics,
	}
}

func metrics(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	all, err := rt.Metrics.Snapshot()
	if err != nil {
		return err
	}
	// Unlabelled counters are always present; hide the untouched ones.
	samples := all[:0]
	for _, s := range all {
		if s.Value != 0 {
			samples = append(samples, s)
		}
	}

	p, err := rt.Printer(c)
	if err != nil {
		return err
	}
	if p.Human() && len(samples) == 0 {
		p.Message("No requests yet.")
		return nil
	}

	table := output.NewTable("NAME", "LABELS", "VALUE")
	for _, s := range samples {
		labels := s.Labels
		if labels == "" {
			labels = "-"
		}
		table.AddRow(s.Name, labels, strconv.FormatFloat(s.Value, 'g', -1, 64))
	}
	return p.Print(samples, table)
}
