package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fieldops/pulse/pkg/runtime/terminal/export"
	"github.com/fieldops/pulse/pkg/services/config"
	reportsvc "github.com/fieldops/pulse/pkg/services/report"
	"github.com/fieldops/pulse/pkg/store/client"
	"github.com/fieldops/pulse/pkg/store/duckdb"
	duckdbreport "github.com/fieldops/pulse/pkg/store/duckdb/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	configPath   string
	profilesPath string
	state        string
	date         string
	columns      []string
	save         bool
	reporter     *export.Reporter
}

func NewReportCmd(reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a KPI report for one state",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.configPath, "config", "pulse.yaml", "Path to the app config file")
	cmd.Flags().StringVar(&rc.profilesPath, "profiles", "profiles.cfg", "Path to the tenant profile file")
	cmd.Flags().StringVar(&rc.state, "state", "", "State to report on (e.g. NSW)")
	cmd.Flags().StringVar(&rc.date, "date", "", "Report date YYYY-MM-DD (default: today so far)")
	cmd.Flags().StringSliceVar(&rc.columns, "columns", nil, "Report columns (default: config default_columns)")
	cmd.Flags().BoolVar(&rc.save, "save", false, "Persist the report to the local database")

	_ = cmd.MarkFlagRequired("state")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx, cancel := context.WithTimeout(logger.WithContext(cmd.Context()), 120*time.Second)
	defer cancel()

	env, err := buildEnv(rc.configPath, rc.profilesPath)
	if err != nil {
		return err
	}

	req := reportsvc.Request{Columns: rc.columns}
	if len(req.Columns) == 0 {
		req.Columns = env.cfg.DefaultColumns
	}

	anchor := rc.date
	if rc.date != "" {
		day, err := time.ParseInLocation("2006-01-02", rc.date, env.loc)
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", rc.date)
		}
		req.Date = &day
	} else {
		anchor = time.Now().In(env.loc).Format("2006-01-02")
	}

	rep, err := env.service.Generate(ctx, rc.state, req)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if rc.save {
		store, closeDB, err := openReportStore(env.cfg.DBPath)
		if err != nil {
			return err
		}
		defer closeDB()

		if err := store.Add(ctx, rc.state, anchor, rep); err != nil {
			return fmt.Errorf("failed to persist report: %w", err)
		}
		logger.Info().Str("state", rc.state).Str("anchor", anchor).Msg("report persisted")
	}

	return rc.reporter.Handle(rc.state, rep)
}

// env bundles the per-run service wiring shared by report and backfill.
type env struct {
	cfg     *config.AppConfig
	loc     *time.Location
	service reportsvc.Service
}

func buildEnv(configPath, profilesPath string) (*env, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	profiles, err := config.NewRegistry(profilesPath)
	if err != nil {
		return nil, err
	}

	service := reportsvc.NewService(profiles, func(p config.Profile) reportsvc.Fetcher {
		return client.NewFieldServiceClient(cfg.APIBaseURL, p)
	}, loc)

	return &env{cfg: cfg, loc: loc, service: service}, nil
}

func openReportStore(dbPath string) (duckdbreport.Store, func(), error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open report database: %w", err)
	}
	store, err := duckdbreport.NewStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, func() { db.Close() }, nil
}
