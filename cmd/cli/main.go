package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kosarica/supplier-import/config"
	"github.com/kosarica/supplier-import/internal/database"
	"github.com/kosarica/supplier-import/internal/suppliers"
	"github.com/kosarica/supplier-import/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	suppliersFile string
	cfg           *config.Config
	logger        *zerolog.Logger

	shutdownTelemetry = func(context.Context) error { return nil }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "supplier-import",
	Short: "Supplier Import CLI - price list parsing and pricing tool",
	Long: `A CLI tool for importing supplier price lists. Files may be delimited
(CSV, semicolon, tab or pipe separated) or fixed-column text. Each row is mapped
to a canonical product row and priced under one of the pricing modes: net_only,
calculated, percentage or code_mapping.`,
	PersistentPreRunE:  persistentPreRun,
	PersistentPostRunE: persistentPostRun,
	SilenceUsage:       true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&suppliersFile, "suppliers-file", "", "YAML file with supplier parser and discount settings")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// Config is optional for the offline commands
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
}

func persistentPreRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}
	logger = initLogger()

	// exports only when OTEL_EXPORTER_OTLP_ENDPOINT is set
	shutdown, err := telemetry.Init(cmd.Context(), telemetry.ConfigFromEnv())
	if err != nil {
		logger.Warn().Err(err).Msg("Telemetry disabled")
		return nil
	}
	shutdownTelemetry = shutdown
	return nil
}

func persistentPostRun(cmd *cobra.Command, args []string) error {
	if err := shutdownTelemetry(cmd.Context()); err != nil {
		logger.Warn().Err(err).Msg("Telemetry shutdown failed")
	}
	return nil
}

// initLogger writes to stderr so table and JSON output stay clean on stdout
func initLogger() *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.WarnLevel
	if cfg != nil && cfg.Logging.Level != "" {
		if parsedLevel, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
			level = parsedLevel
		}
	}

	var output io.Writer
	if cfg != nil && cfg.Logging.Format == "json" {
		output = os.Stderr
	} else {
		noColor := false
		if cfg != nil {
			noColor = cfg.Logging.NoColor
		}
		output = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor}
	}

	log := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &log
}

// openStore picks the supplier settings source: the --suppliers-file flag,
// then import.suppliers_file, then the database. It returns a nil store and a
// no-op cleanup when none is configured.
func openStore(ctx context.Context) (suppliers.Store, func(), error) {
	path := suppliersFile
	if path == "" && cfg != nil {
		path = cfg.Import.SuppliersFile
	}
	if path != "" {
		store, err := suppliers.LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug().Str("file", path).Strs("suppliers", store.IDs()).Msg("Loaded supplier settings")
		return store, func() {}, nil
	}

	if cfg == nil || cfg.Database.URL == "" {
		logger.Debug().Msg("No supplier settings configured")
		return nil, func() {}, nil
	}

	if err := database.Connect(ctx, database.Config{
		URL:             cfg.Database.URL,
		MaxConns:        cfg.Database.MaxConnections,
		MinConns:        cfg.Database.MinConnections,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info().Msg("Database connected")
	return suppliers.NewPostgresStore(database.Pool(), *logger), database.Close, nil
}

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
