package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldops/pulse/pkg/models/domain"
	"github.com/fieldops/pulse/pkg/runtime/terminal/export"
	"github.com/fieldops/pulse/pkg/services/config"
	"github.com/spf13/cobra"
)

type HistoryCmd struct {
	configPath string
	state      string
	anchor     string
	limit      int
	reporter   *export.Reporter
}

// NewHistoryCmd reads previously persisted reports back out of the
// local database: one report when --anchor is given, the most recent
// --limit reports otherwise.
func NewHistoryCmd(reporter *export.Reporter) *cobra.Command {
	hc := &HistoryCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show persisted reports for one state",
		RunE:  hc.run,
	}

	cmd.Flags().StringVar(&hc.configPath, "config", "pulse.yaml", "Path to the app config file")
	cmd.Flags().StringVar(&hc.state, "state", "", "State to show reports for (e.g. NSW)")
	cmd.Flags().StringVar(&hc.anchor, "anchor", "", "Show the single report with this time anchor")
	cmd.Flags().IntVar(&hc.limit, "limit", 7, "Number of recent reports to show")

	_ = cmd.MarkFlagRequired("state")

	return cmd
}

func (hc *HistoryCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	cfg, err := config.LoadConfig(hc.configPath)
	if err != nil {
		return err
	}

	store, closeDB, err := openReportStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer closeDB()

	if hc.anchor != "" {
		record, err := store.Get(ctx, hc.state, hc.anchor)
		if err != nil {
			return err
		}
		return hc.reporter.Handle(hc.state, domain.Report(record.Columns))
	}

	records, err := store.List(ctx, hc.state, hc.limit)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no persisted reports for %s", hc.state)
	}

	for _, record := range records {
		if err := hc.reporter.Handle(
			fmt.Sprintf("%s at %s", record.State, record.Anchor),
			domain.Report(record.Columns),
		); err != nil {
			return err
		}
	}
	return nil
}
