//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"
	"sort"

	"github.com/pgEdge/pgedge-edw/internal/logging"
)

// MetadataTable stores key/value facts about the load that produced the
// artifact.
var MetadataTable = Table{
	Name: "edw_metadata",
	Columns: []Column{
		{Name: "key", Type: Text, PrimaryKey: true},
		{Name: "value", Type: Text, NotNull: true},
	},
}

// SaveMetadata creates the metadata table and writes the given entries.
// It expects a freshly reset sink.
func SaveMetadata(ctx context.Context, sink Sink, metadata map[string]string) error {
	if err := sink.Exec(ctx, sink.Dialect().CreateTable(MetadataTable)); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]any, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []any{k, metadata[k]})
	}

	if _, err := sink.Insert(ctx, MetadataTable.Name, MetadataTable.InsertColumns(), rows); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Debug().
		Str("artifact", sink.Name()).
		Int("entries", len(rows)).
		Msg("Saved metadata")

	return nil
}

// ReadMetadata retrieves all metadata as a map.
func ReadMetadata(ctx context.Context, sink Sink) (map[string]string, error) {
	d := sink.Dialect()
	q := fmt.Sprintf("SELECT %s, %s FROM %s",
		d.QuoteIdent("key"), d.QuoteIdent("value"), d.QuoteIdent(MetadataTable.Name))

	metadata := make(map[string]string)
	err := sink.Query(ctx, q, func(row RowScanner) error {
		var key, value string
		if err := row.Scan(&key, &value); err != nil {
			return err
		}
		metadata[key] = value
		return nil
	})
	if err != nil {
		return nil, err
	}
	return metadata, nil
}
