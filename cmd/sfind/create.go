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
)

// stdin lines carry whole JSON arrays of records; embedding vectors
// make them large.
const maxLineBytes = 64 * 1024 * 1024

func createCmd(verbose *bool, envFile *string) *cobra.Command {
	var dbURL string
	var indexName string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a search index from blocks of code",
		Long: `Generate a search index from blocks of code.

Reads a JSON array of objects from stdin, and writes an array of the
same length to stdout. Input objects must contain 'code' (string),
which will be replaced with 'embedding' (array).

With --name, records from all input lines are combined and stored as a
named index in the database instead of being written to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), *verbose, *envFile, dbURL, indexName)
		},
	}

	cmd.Flags().StringVar(&dbURL, "db", "", "Database URL for saved indexes (default: DB_URL)")
	cmd.Flags().StringVar(&indexName, "name", "", "Store the index under this name instead of printing it")

	return cmd
}

func runCreate(ctx context.Context, stdin io.Reader, stdout io.Writer, verbose bool, envFile, dbURL, indexName string) error {
	cfg, err := loadConfig(envFile, verbose)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	client, err := newClient(cfg, logger, dbURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			logger.Error("close client", slog.Any("error", closeErr))
		}
	}()

	var stored []search.Record

	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var records []search.Record
		if err := json.Unmarshal(line, &records); err != nil {
			return fmt.Errorf("parse input: %w", err)
		}

		index, err := client.CreateIndex(ctx, records)
		if err != nil {
			return err
		}
		logger.Debug("indexed records", slog.Int("count", len(index)))

		if indexName != "" {
			stored = append(stored, index...)
			continue
		}

		out, err := json.Marshal(index)
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		fmt.Fprintln(stdout, string(out))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if indexName != "" {
		if err := client.SaveIndex(ctx, indexName, stored); err != nil {
			return err
		}
		logger.Info("index saved", slog.String("name", indexName), slog.Int("records", len(stored)))
	}

	return nil
}
