//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-edw/internal/edw"
	"github.com/pgEdge/pgedge-edw/internal/logging"
)

// loadFlags are the target overrides of one pipeline command.
type loadFlags struct {
	backend string
	output  string
	dsn     string
	schema  string
}

func newLoadCmd(model, short, defaultOutput string) *cobra.Command {
	flags := &loadFlags{}

	cmd := &cobra.Command{
		Use:   model,
		Short: short,
		Long: short + `.

The existing artifact (SQLite file or PostgreSQL schema) is destroyed and
rebuilt from the extracts in the input directory.

Example:
  pgedge-edw ` + model + ` --input-dir data --output ` + defaultOutput + `
  pgedge-edw ` + model + ` --backend postgres --dsn "postgres://..." --schema ` + model,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), model, flags)
		},
	}

	cmd.Flags().StringVar(&flags.backend, "backend", "",
		"warehouse backend: sqlite or postgres")
	cmd.Flags().StringVar(&flags.output, "output", "",
		"SQLite database file (default: "+defaultOutput+")")
	cmd.Flags().StringVar(&flags.dsn, "dsn", "",
		"PostgreSQL connection string (postgres backend)")
	cmd.Flags().StringVar(&flags.schema, "schema", "",
		"PostgreSQL schema to rebuild (postgres backend)")

	return cmd
}

func runLoad(ctx context.Context, model string, flags *loadFlags) error {
	target, err := cfg.Target(model)
	if err != nil {
		return err
	}

	// Override config with CLI flags
	if flags.backend != "" {
		target.Backend = flags.backend
	}
	if flags.output != "" {
		target.Path = flags.output
	}
	if flags.dsn != "" {
		target.DSN = flags.dsn
	}
	if flags.schema != "" {
		target.Schema = flags.schema
	}

	if err := cfg.ValidateWarehouse(*target); err != nil {
		return err
	}

	m, err := edw.Get(model)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().
		Str("model", model).
		Str("backend", target.Backend).
		Str("input_dir", cfg.InputDir).
		Msg("Starting load")

	result, err := edw.Run(ctx, m, cfg.InputDir, *target, edw.OptionsFromConfig(cfg))
	if err != nil {
		logging.Error().
			Err(err).
			Str("model", model).
			Msg("Load failed")
		return err
	}

	for _, tc := range result.Tables {
		logging.Info().
			Str("table", tc.Table).
			Int64("rows", tc.Rows).
			Msg("Loaded")
	}
	for name, n := range result.Anomalies {
		if n > 0 {
			logging.Warn().
				Str("counter", name).
				Int64("count", n).
				Msg("Data-quality anomalies")
		}
	}

	logging.Info().
		Str("model", model).
		Str("run_id", result.RunID.String()).
		Msg("Load complete")

	return nil
}
