// cmd/migrate/main.go
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/report-migrator/pkg/config"
	"github.com/David-Botos/report-migrator/pkg/logger"
	"github.com/David-Botos/report-migrator/pkg/migration"
)

var (
	configPath string
	logLevel   string
	headless   bool
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate report template layouts between two org environments",
	Long: `migrate drives the admin UI of a source org to capture report template
layout encodings, remaps the custom-field identifiers they embed against the
target org's schema catalog, and replays the rewritten encodings into the
target org.

Org credentials come from SOURCE_* and TARGET_* environment variables
(a .env file in the working directory is loaded if present); everything
else comes from the YAML run file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMigration,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "migrate.yaml", "path to the run configuration file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "override the run file's headless setting")
}

func runMigration(cmd *cobra.Command, args []string) error {
	// Optional overlay; real deployments set the variables directly.
	_ = godotenv.Load()

	level, format := config.LoadLogSettings()
	if logLevel != "" {
		level = logLevel
	}
	log, err := logger.New(level, format)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load(configPath)
	if err != nil {
		return &migration.FatalError{Kind: migration.KindConfiguration, Details: []string{err.Error()}}
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = headless
	}

	source, err := config.LoadSourceOrg()
	if err != nil {
		return &migration.FatalError{Kind: migration.KindConfiguration, Details: []string{err.Error()}}
	}
	target, err := config.LoadTargetOrg()
	if err != nil {
		return &migration.FatalError{Kind: migration.KindConfiguration, Details: []string{err.Error()}}
	}

	artifacts, err := migration.NewArtifactWriter(cfg.ArtifactsDir, log)
	if err != nil {
		return &migration.FatalError{Kind: migration.KindConfiguration, Details: []string{err.Error()}}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := migration.New(cfg, source, target, artifacts, log)
	if err := m.Run(ctx); err != nil {
		log.Error("Migration failed", zap.Error(err))
		if logErr := artifacts.AppendError(err); logErr != nil {
			log.Warn("Could not append to error log", zap.Error(logErr))
		}
		return err
	}

	log.Info("Migration completed")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
