//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package edw defines the warehouse model interface and the load plumbing
// shared by the model implementations.
package edw

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pgEdge/pgedge-edw/internal/config"
	"github.com/pgEdge/pgedge-edw/internal/extract"
	"github.com/pgEdge/pgedge-edw/internal/warehouse"
)

// Model is a warehouse design that can be loaded from a set of extracts.
type Model interface {
	// Name returns the model name.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Tables returns the model's tables in creation order.
	Tables() []warehouse.Table

	// Load rebuilds the model's artifact in sink from set.
	Load(ctx context.Context, sink warehouse.Sink, set *extract.Set, opts LoadOptions) (*LoadResult, error)
}

// LoadOptions holds the per-run settings passed into a model.
type LoadOptions struct {
	// SourceSystem tags provenance columns.
	SourceSystem string

	// Mode is the run mode recorded in metadata.
	Mode string

	// Batch controls bulk insert chunking.
	Batch warehouse.BatchConfig

	// Now returns the load timestamp. Defaults to time.Now.
	Now func() time.Time
}

// OptionsFromConfig builds LoadOptions from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) LoadOptions {
	batch := warehouse.DefaultBatchConfig()
	batch.BatchSize = cfg.BatchSize
	return LoadOptions{
		SourceSystem: cfg.SourceSystem,
		Mode:         cfg.Mode,
		Batch:        batch,
	}
}

func (o LoadOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// TableCount is the number of rows loaded into one table.
type TableCount struct {
	Table string
	Rows  int64
}

// LoadResult summarizes one load.
type LoadResult struct {
	Model    string
	RunID    uuid.UUID
	LoadedAt time.Time

	// Tables lists row counts in load order.
	Tables []TableCount

	// Anomalies holds named data-quality counters. Empty for models that
	// tolerate no anomalies.
	Anomalies map[string]int64
}

// NewResult starts the result of a run of model at the options' clock.
func NewResult(model string, opts LoadOptions) *LoadResult {
	return &LoadResult{
		Model:     model,
		RunID:     uuid.New(),
		LoadedAt:  opts.now().UTC(),
		Anomalies: make(map[string]int64),
	}
}

// Add records rows loaded into table.
func (r *LoadResult) Add(table string, rows int64) {
	r.Tables = append(r.Tables, TableCount{Table: table, Rows: rows})
}

// Rows returns the rows loaded into table, or -1 if the table was not
// loaded.
func (r *LoadResult) Rows(table string) int64 {
	for _, tc := range r.Tables {
		if tc.Table == table {
			return tc.Rows
		}
	}
	return -1
}
