//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"

	"github.com/pgEdge/pgedge-edw/internal/logging"
)

// BatchConfig configures bulk insert behavior.
type BatchConfig struct {
	// BatchSize is the number of rows per Insert call.
	BatchSize int

	// ProgressInterval is how often to log progress (in rows).
	ProgressInterval int64
}

// DefaultBatchConfig returns default bulk insert configuration.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		BatchSize:        500,
		ProgressInterval: 10000,
	}
}

// ProgressReporter tracks and reports load progress for one table.
type ProgressReporter struct {
	tableName        string
	totalRows        int64
	currentRow       int64
	progressInterval int64
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(tableName string, totalRows int64, interval int64) *ProgressReporter {
	if interval < 1 {
		interval = 1
	}
	return &ProgressReporter{
		tableName:        tableName,
		totalRows:        totalRows,
		progressInterval: interval,
	}
}

// Update updates the progress and logs if necessary.
func (p *ProgressReporter) Update(rowsInserted int64) {
	oldRow := p.currentRow
	p.currentRow += rowsInserted

	// Check if we crossed a progress interval
	if p.currentRow/p.progressInterval > oldRow/p.progressInterval {
		pct := float64(p.currentRow) / float64(p.totalRows) * 100
		logging.Debug().
			Str("table", p.tableName).
			Int64("rows", p.currentRow).
			Int64("total", p.totalRows).
			Float64("percent", pct).
			Msg("Loading rows")
	}
}

// Rows returns the number of rows reported so far.
func (p *ProgressReporter) Rows() int64 {
	return p.currentRow
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	logging.Info().
		Str("table", p.tableName).
		Int64("rows", p.currentRow).
		Msg("Table loaded")
}

// InsertAll appends rows to table in chunks of cfg.BatchSize and returns the
// number of rows the sink reported as inserted. The first failing chunk
// stops the load; its error is returned as-is so constraint errors stay
// inspectable.
func InsertAll(
	ctx context.Context,
	sink Sink,
	table string,
	columns []string,
	rows [][]any,
	cfg BatchConfig,
) (int64, error) {
	if cfg.BatchSize < 1 {
		return 0, fmt.Errorf("batch size must be at least 1")
	}

	progress := NewProgressReporter(table, int64(len(rows)), cfg.ProgressInterval)

	for start := 0; start < len(rows); start += cfg.BatchSize {
		end := min(start+cfg.BatchSize, len(rows))
		n, err := sink.Insert(ctx, table, columns, rows[start:end])
		progress.Update(n)
		if err != nil {
			return progress.Rows(), err
		}
	}

	progress.Done()
	return progress.Rows(), nil
}
