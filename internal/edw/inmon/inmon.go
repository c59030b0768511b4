//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package inmon loads the extracts into a normalized (3NF) enterprise
// warehouse: one table per source entity, provenance columns appended,
// foreign keys enforced by the sink.
package inmon

import (
	"context"
	"fmt"

	"github.com/pgEdge/pgedge-edw/internal/edw"
	"github.com/pgEdge/pgedge-edw/internal/extract"
	"github.com/pgEdge/pgedge-edw/internal/logging"
	"github.com/pgEdge/pgedge-edw/internal/warehouse"
)

// Name is the registry name of the model.
const Name = "inmon"

func init() {
	edw.Register(&Model{})
}

// Model implements edw.Model for the normalized warehouse.
type Model struct{}

// Name returns the model name.
func (m *Model) Name() string {
	return Name
}

// Description returns a human-readable description.
func (m *Model) Description() string {
	return "Normalized 3NF warehouse (Customer, Product, Order_Header, Order_Item)"
}

// Tables returns the normalized schema.
func (m *Model) Tables() []warehouse.Table {
	return Tables()
}

// Load rebuilds the normalized warehouse. A primary or foreign key
// violation aborts the run with the sink's error.
func (m *Model) Load(ctx context.Context, sink warehouse.Sink, set *extract.Set, opts edw.LoadOptions) (*edw.LoadResult, error) {
	result := edw.NewResult(Name, opts)

	tables := Tables()
	if err := edw.Prepare(ctx, sink, tables); err != nil {
		return nil, err
	}

	byName := make(map[string]warehouse.Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	batches := Transform(set, Provenance{
		LoadDate:     result.LoadedAt,
		SourceSystem: opts.SourceSystem,
	})
	for _, b := range batches {
		if err := edw.InsertTable(ctx, sink, result, byName[b.Table], b.Rows, opts); err != nil {
			return nil, err
		}
	}

	if err := edw.SaveRunMetadata(ctx, sink, set, opts, result); err != nil {
		return nil, fmt.Errorf("failed to save run metadata: %w", err)
	}

	logging.Info().
		Str("artifact", sink.Name()).
		Str("run_id", result.RunID.String()).
		Msg("Inmon load complete")

	return result, nil
}
