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
)

// LoadKeyMap reads a natural key to surrogate key mapping back from a
// persisted table.
func LoadKeyMap(ctx context.Context, sink Sink, table, naturalColumn, surrogateColumn string) (map[string]int64, error) {
	d := sink.Dialect()
	q := fmt.Sprintf("SELECT %s, %s FROM %s",
		d.QuoteIdent(naturalColumn), d.QuoteIdent(surrogateColumn), d.QuoteIdent(table))

	keys := make(map[string]int64)
	err := sink.Query(ctx, q, func(row RowScanner) error {
		var natural string
		var surrogate int64
		if err := row.Scan(&natural, &surrogate); err != nil {
			return err
		}
		keys[natural] = surrogate
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read keys of %s: %w", table, err)
	}
	return keys, nil
}

// CountRows returns the number of rows in table.
func CountRows(ctx context.Context, sink Sink, table string) (int64, error) {
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", sink.Dialect().QuoteIdent(table))

	var n int64
	err := sink.Query(ctx, q, func(row RowScanner) error {
		return row.Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count rows of %s: %w", table, err)
	}
	return n, nil
}

// CountNulls returns the number of rows in table where column is NULL.
func CountNulls(ctx context.Context, sink Sink, table, column string) (int64, error) {
	d := sink.Dialect()
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s IS NULL", d.QuoteIdent(table), d.QuoteIdent(column))

	var n int64
	err := sink.Query(ctx, q, func(row RowScanner) error {
		return row.Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count nulls of %s.%s: %w", table, column, err)
	}
	return n, nil
}
