package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fieldops/pulse/pkg/models/domain"
	reportsvc "github.com/fieldops/pulse/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type BackfillCmd struct {
	configPath   string
	profilesPath string
	state        string
	from         string
	to           string
	columns      []string
}

// NewBackfillCmd generates and persists one report per day over a date
// range. Days that fail are skipped so a single bad upstream response
// does not abort the whole range.
func NewBackfillCmd() *cobra.Command {
	bc := &BackfillCmd{}
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Generate and persist daily reports over a date range",
		RunE:  bc.run,
	}

	cmd.Flags().StringVar(&bc.configPath, "config", "pulse.yaml", "Path to the app config file")
	cmd.Flags().StringVar(&bc.profilesPath, "profiles", "profiles.cfg", "Path to the tenant profile file")
	cmd.Flags().StringVar(&bc.state, "state", "", "State to report on (e.g. NSW)")
	cmd.Flags().StringVar(&bc.from, "from", "", "First report date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&bc.to, "to", "", "Last report date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringSliceVar(&bc.columns, "columns", nil, "Report columns (default: config default_columns)")

	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (bc *BackfillCmd) run(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	env, err := buildEnv(bc.configPath, bc.profilesPath)
	if err != nil {
		return err
	}

	from, err := time.ParseInLocation("2006-01-02", bc.from, env.loc)
	if err != nil {
		return fmt.Errorf("invalid from date %q, expected YYYY-MM-DD", bc.from)
	}
	to, err := time.ParseInLocation("2006-01-02", bc.to, env.loc)
	if err != nil {
		return fmt.Errorf("invalid to date %q, expected YYYY-MM-DD", bc.to)
	}
	if to.Before(from) {
		return fmt.Errorf("to date %s is before from date %s", bc.to, bc.from)
	}

	columns := bc.columns
	if len(columns) == 0 {
		columns = env.cfg.DefaultColumns
	}

	store, closeDB, err := openReportStore(env.cfg.DBPath)
	if err != nil {
		return err
	}
	defer closeDB()

	var failed int
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if err := bc.backfillDay(ctx, env, store.Add, day, columns); err != nil {
			failed++
			logger.Error().Err(err).Str("date", day.Format("2006-01-02")).Msg("backfill day failed")
		}
	}

	logger.Info().
		Str("state", bc.state).
		Str("from", bc.from).
		Str("to", bc.to).
		Int("failed", failed).
		Msg("backfill finished")

	if failed > 0 {
		return fmt.Errorf("%d day(s) failed to backfill", failed)
	}
	return nil
}

type addReport func(ctx context.Context, state, anchor string, rep domain.Report) error

func (bc *BackfillCmd) backfillDay(ctx context.Context, env *env, add addReport, day time.Time, columns []string) error {
	dayCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	req := reportsvc.Request{Columns: columns, Date: &day}
	rep, err := env.service.Generate(dayCtx, bc.state, req)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if err := add(dayCtx, bc.state, day.Format("2006-01-02"), rep); err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}
