package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sourcefield/sfind/domain/search"
	"github.com/sourcefield/sfind/internal/config"
)

func searchCmd(verbose *bool, envFile *string) *cobra.Command {
	var limit int
	var threshold float64
	var dbURL string
	var indexName string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search an index generated with the create command",
		Long: `Search an index that was generated with the create command.

Reads a JSON array from stdin, and writes an array of results to
stdout. Each result will contain 'score' (number). Results will be
sorted by score in descending order.

With --name, the index is loaded from the database instead of stdin and
searched exactly once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := searchParams{
				query:        args[0],
				limit:        limit,
				limitSet:     cmd.Flags().Changed("limit"),
				threshold:    threshold,
				thresholdSet: cmd.Flags().Changed("threshold"),
				dbURL:        dbURL,
				indexName:    indexName,
			}
			return runSearch(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), *verbose, *envFile, params)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", config.DefaultSearchLimit, "Maximum number of search results to return. (default: 5)")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", config.DefaultSearchThreshold, "Minimum similarity threshold for search results. (default: 0.3)")
	cmd.Flags().StringVar(&dbURL, "db", "", "Database URL for saved indexes (default: DB_URL)")
	cmd.Flags().StringVar(&indexName, "name", "", "Search a stored index instead of reading stdin")

	return cmd
}

type searchParams struct {
	query        string
	limit        int
	limitSet     bool
	threshold    float64
	thresholdSet bool
	dbURL        string
	indexName    string
}

// queryOptions resolves limit and threshold: an explicit flag wins,
// then the environment, then the defaults.
func (p searchParams) queryOptions(cfg config.AppConfig) []search.Option {
	limit := cfg.SearchLimit()
	if p.limitSet {
		limit = p.limit
	}

	threshold := cfg.SearchThreshold()
	if p.thresholdSet {
		threshold = p.threshold
	}

	return []search.Option{
		search.WithLimit(limit),
		search.WithThreshold(threshold),
	}
}

func runSearch(ctx context.Context, stdin io.Reader, stdout io.Writer, verbose bool, envFile string, params searchParams) error {
	cfg, err := loadConfig(envFile, verbose)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	client, err := newClient(cfg, logger, params.dbURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			logger.Error("close client", slog.Any("error", closeErr))
		}
	}()

	opts := params.queryOptions(cfg)

	searchOne := func(index []search.Record) error {
		results, err := client.Search(ctx, index, params.query, opts...)
		if err != nil {
			return err
		}
		logger.Debug("search complete",
			slog.String("query", params.query),
			slog.Int("results", len(results)),
		)

		out, err := json.Marshal(results)
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		fmt.Fprintln(stdout, string(out))
		return nil
	}

	if params.indexName != "" {
		index, err := client.LoadIndex(ctx, params.indexName)
		if err != nil {
			return err
		}
		return searchOne(index)
	}

	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var index []search.Record
		if err := json.Unmarshal(line, &index); err != nil {
			return fmt.Errorf("parse input: %w", err)
		}

		if err := searchOne(index); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	return nil
}
