// Package main is the entry point for the sfind CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	sfind "github.com/sourcefield/sfind"
	"github.com/sourcefield/sfind/internal/config"
	"github.com/sourcefield/sfind/internal/log"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool
	var envFile string

	cmd := &cobra.Command{
		Use:   "sfind",
		Short: "Search for code blocks using natural language queries",
		Long: `sfind embeds code snippets with a pretrained encoder and ranks them
against natural-language queries by cosine similarity.

Data flows as newline-delimited JSON: each stdin line is a JSON array,
each stdout line is the corresponding JSON array of results.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print verbose output. (default: false)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to .env file")

	cmd.AddCommand(createCmd(&verbose, &envFile))
	cmd.AddCommand(searchCmd(&verbose, &envFile))
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from the .env file and environment,
// forcing DEBUG level when --verbose was given.
func loadConfig(envFile string, verbose bool) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg = cfg.WithLogLevel("DEBUG")
	}
	return cfg, nil
}

// newClient builds an sfind client from configuration. dbOverride, when
// set, wins over the DB_URL environment variable.
func newClient(cfg config.AppConfig, logger *slog.Logger, dbOverride string) (*sfind.Client, error) {
	opts := []sfind.Option{
		sfind.WithLogger(logger),
		sfind.WithModelDir(cfg.ModelDir()),
	}

	if cfg.EmbeddingEndpoint().Configured() {
		opts = append(opts, sfind.WithEndpoint(cfg.EmbeddingEndpoint()))
	}
	if cfg.HTTPCacheDir() != "" {
		opts = append(opts, sfind.WithHTTPCacheDir(cfg.HTTPCacheDir()))
	}

	dbURL := dbOverride
	if dbURL == "" {
		dbURL = cfg.DBURL()
	}
	if dbURL != "" {
		opts = append(opts, sfind.WithDatabaseURL(dbURL))
	}

	return sfind.New(opts...)
}

func newLogger(cfg config.AppConfig) *slog.Logger {
	return log.New(cfg)
}
