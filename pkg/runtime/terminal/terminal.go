package terminal

import (
	"io"

	"github.com/fieldops/pulse/pkg/runtime/terminal/commands"
	"github.com/fieldops/pulse/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type CLI struct {
	rootCmd *cobra.Command
}

type Options struct {
	Output io.Writer
}

func NewCLI(opts Options) *CLI {
	reporter := export.NewReporter(opts.Output)
	return &CLI{
		rootCmd: newRootCmd(reporter),
	}
}

func (c *CLI) Execute() error {
	return c.rootCmd.Execute()
}

func newRootCmd(reporter *export.Reporter) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pulse",
		Short: "Field service KPI reporting",
		Long:  "Generate, inspect and backfill daily field service KPI reports per state.",
	}

	rootCmd.AddCommand(commands.NewReportCmd(reporter))
	rootCmd.AddCommand(commands.NewBackfillCmd())
	rootCmd.AddCommand(commands.NewHistoryCmd(reporter))

	return rootCmd
}
