//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package edw

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/multierr"

	"github.com/pgEdge/pgedge-edw/internal/config"
	"github.com/pgEdge/pgedge-edw/internal/extract"
	"github.com/pgEdge/pgedge-edw/internal/logging"
	"github.com/pgEdge/pgedge-edw/internal/warehouse"
	"github.com/pgEdge/pgedge-edw/pkg/version"
)

// Prepare establishes a fresh artifact: previous state is discarded and
// every table is created empty.
func Prepare(ctx context.Context, sink warehouse.Sink, tables []warehouse.Table) error {
	if err := sink.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset %s: %w", sink.Name(), err)
	}
	if err := warehouse.CreateTables(ctx, sink, tables); err != nil {
		return err
	}

	logging.Info().
		Str("artifact", sink.Name()).
		Int("tables", len(tables)).
		Msg("Tables created")
	return nil
}

// InsertTable bulk loads rows into table and records the count in result.
func InsertTable(
	ctx context.Context,
	sink warehouse.Sink,
	result *LoadResult,
	table warehouse.Table,
	rows [][]any,
	opts LoadOptions,
) error {
	n, err := warehouse.InsertAll(ctx, sink, table.Name, table.InsertColumns(), rows, opts.Batch)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", table.Name, err)
	}
	result.Add(table.Name, n)
	return nil
}

// SaveRunMetadata records run provenance, per-extract row counts and
// checksums, and any anomaly counters in the artifact.
func SaveRunMetadata(
	ctx context.Context,
	sink warehouse.Sink,
	set *extract.Set,
	opts LoadOptions,
	result *LoadResult,
) error {
	metadata := map[string]string{
		"model":         result.Model,
		"version":       version.Short(),
		"run_id":        result.RunID.String(),
		"loaded_at":     result.LoadedAt.Format(time.RFC3339),
		"source_system": opts.SourceSystem,
		"mode":          opts.Mode,
	}
	for _, e := range extract.Entities {
		metadata[string(e)+"_rows"] = strconv.Itoa(set.RowCount(e))
		if info, ok := set.Files[e]; ok {
			metadata[string(e)+"_xxh3"] = fmt.Sprintf("%016x", info.Checksum)
		}
	}
	for name, n := range result.Anomalies {
		metadata[name] = strconv.FormatInt(n, 10)
	}

	return warehouse.SaveMetadata(ctx, sink, metadata)
}

// Run reads the extracts in inputDir and loads them into the artifact
// described by target. Extracts are fully read and validated before the
// artifact is touched.
func Run(
	ctx context.Context,
	model Model,
	inputDir string,
	target config.WarehouseConfig,
	opts LoadOptions,
) (result *LoadResult, err error) {
	logging.Info().
		Str("model", model.Name()).
		Str("input_dir", inputDir).
		Msg("Reading extracts")

	set, err := extract.ReadDir(ctx, inputDir)
	if err != nil {
		return nil, err
	}

	sink, err := warehouse.Open(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse: %w", err)
	}
	defer func() {
		err = multierr.Append(err, sink.Close())
	}()

	return model.Load(ctx, sink, set, opts)
}
