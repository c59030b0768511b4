//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package inmon

import (
	"time"

	"github.com/pgEdge/pgedge-edw/internal/extract"
)

// Provenance is stamped on every normalized row.
type Provenance struct {
	LoadDate     time.Time
	SourceSystem string
}

// Batch is the rows bound for one normalized table.
type Batch struct {
	Table string
	Rows  [][]any
}

// Transform maps every source row to exactly one normalized row, in source
// order, with the provenance columns appended. No keys are resolved and
// nothing is deduplicated.
func Transform(set *extract.Set, p Provenance) []Batch {
	return []Batch{
		{Table: CustomerTable, Rows: mapRows(set.Customers, p)},
		{Table: ProductTable, Rows: mapRows(set.Products, p)},
		{Table: OrderHeaderTable, Rows: mapRows(set.Orders, p)},
		{Table: OrderItemTable, Rows: mapRows(set.Items, p)},
	}
}

func mapRows[T interface{ Values() []any }](src []T, p Provenance) [][]any {
	rows := make([][]any, len(src))
	for i, r := range src {
		rows[i] = append(r.Values(), p.LoadDate, p.SourceSystem)
	}
	return rows
}
