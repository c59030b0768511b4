//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse defines the storage contract the pipelines load into
// and the registry of storage backends.
package warehouse

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pgEdge/pgedge-edw/internal/config"
)

// RowScanner is the read side of a query result row. Both database/sql and
// pgx rows satisfy it.
type RowScanner interface {
	Scan(dest ...any) error
}

// Dialect renders DDL and identifiers for one storage engine.
type Dialect interface {
	// Name returns the backend kind, e.g. "sqlite".
	Name() string

	// QuoteIdent quotes a table or column name.
	QuoteIdent(name string) string

	// CreateTable renders the CREATE TABLE statement for t.
	CreateTable(t Table) string
}

// Sink is a warehouse artifact the pipelines write into.
type Sink interface {
	// Name identifies the persisted artifact (file path or schema).
	Name() string

	// Dialect returns the DDL dialect of the sink.
	Dialect() Dialect

	// Reset discards any previous artifact and leaves an empty one.
	// Calling it repeatedly is safe.
	Reset(ctx context.Context) error

	// Exec runs a statement, typically DDL.
	Exec(ctx context.Context, sql string) error

	// Insert appends rows to table. Each row is aligned with columns.
	Insert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// Query runs sql and calls fn once per result row.
	Query(ctx context.Context, sql string, fn func(RowScanner) error) error

	// Close releases the connection.
	Close() error
}

// Factory opens a Sink for a warehouse configuration.
type Factory func(ctx context.Context, cfg config.WarehouseConfig) (Sink, error)

var (
	registry = make(map[string]Factory)
	mu       sync.RWMutex
)

// Register adds a backend factory to the registry.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	registry[kind] = f
}

// Open resolves cfg.Backend and opens a Sink.
func Open(ctx context.Context, cfg config.WarehouseConfig) (Sink, error) {
	mu.RLock()
	f, ok := registry[cfg.Backend]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown warehouse backend: %s", cfg.Backend)
	}
	return f(ctx, cfg)
}

// Backends returns the registered backend kinds, sorted.
func Backends() []string {
	mu.RLock()
	defer mu.RUnlock()

	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// CreateTables executes the CREATE TABLE statement of each table in order.
func CreateTables(ctx context.Context, sink Sink, tables []Table) error {
	for _, t := range tables {
		if err := sink.Exec(ctx, sink.Dialect().CreateTable(t)); err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}
	}
	return nil
}
