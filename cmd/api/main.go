package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/magallanes/coursecatalog/internal/bootstrap"
	"github.com/magallanes/coursecatalog/internal/pkg/logger"
	"github.com/magallanes/coursecatalog/internal/server"
)

// @title Course Catalog API
// @version 1.0
// @description Read-only API over the BSIS/BSIT course catalog
// @host localhost:4020
// @BasePath /
// @schemes http

var (
	configPath    string
	importOnStart bool
)

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Course catalog HTTP service",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the course catalog over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the course catalog into the configured database",
	Long: `Loads the course document and inserts every course into the configured
database (MongoDB or Postgres). Each run appends a full copy; it does not
deduplicate against earlier imports.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", bootstrap.DefaultConfigPath, "path to the YAML config file")
	serveCmd.Flags().BoolVar(&importOnStart, "import", false, "import the catalog into the database before serving")
	rootCmd.Flags().BoolVar(&importOnStart, "import", false, "import the catalog into the database before serving")

	rootCmd.AddCommand(serveCmd, importCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv, err := server.NewServer(cmd.Context(), server.Options{
		ConfigPath:    configPath,
		ImportOnStart: importOnStart,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		return err
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		return err
	}

	logger.Info().Msg("Application finished gracefully.")
	return nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}

	// an import always needs a catalog, regardless of fail_fast
	cfg.Catalog.FailFast = true
	courses, err := bootstrap.LoadCatalog(ctx, cfg, lgr)
	if err != nil {
		return err
	}

	sink, closeDB, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}
	defer func() {
		if err := closeDB(context.Background()); err != nil {
			lgr.Error().Err(err).Msg("Error closing database connection")
		}
	}()

	deps := bootstrap.BuildDependencies(cfg, courses, sink, lgr)
	count, err := deps.Importer.Import(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error importing data")
		return err
	}

	lgr.Info().Int("records", count).Msg("Data imported successfully")
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
