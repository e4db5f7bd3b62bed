package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/fieldops/pulse/pkg/server"
	"github.com/fieldops/pulse/pkg/services/config"
	reportsvc "github.com/fieldops/pulse/pkg/services/report"
	"github.com/fieldops/pulse/pkg/store/client"
	"github.com/fieldops/pulse/pkg/store/duckdb"
	sqlstore "github.com/fieldops/pulse/pkg/store/sql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	profilesPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Pulse web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "pulse.yaml",
		"Path to the app config file")
	rootCmd.Flags().StringVarP(&profilesPath, "profiles", "p", "profiles.cfg",
		"Path to the tenant profile file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("failed to resolve report timezone: %w", err)
	}

	registry, err := config.NewRegistry(profilesPath)
	if err != nil {
		return fmt.Errorf("failed to create profile registry: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	history, err := sqlstore.NewHistoryReader(db)
	if err != nil {
		return fmt.Errorf("failed to create report history reader: %w", err)
	}

	reports := reportsvc.NewService(registry, func(p config.Profile) reportsvc.Fetcher {
		return client.NewFieldServiceClient(cfg.APIBaseURL, p)
	}, loc)

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	logger.Info().Msgf("Found the following states:")
	states, _ := registry.GetStates(cmd.Context())
	for _, state := range states {
		logger.Info().Msgf("State: `%s`", state)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Reports:  reports,
			History:  history,
			Timezone: loc,
		},
	})

	return api.Start()
}
