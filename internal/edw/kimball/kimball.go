//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package kimball loads the extracts into a star schema: a calendar
// dimension spanning the order dates, type-1 customer and product
// dimensions with resolver-assigned surrogate keys, and a sales fact at
// line item grain.
package kimball

import (
	"context"
	"fmt"

	"github.com/pgEdge/pgedge-edw/internal/datedim"
	"github.com/pgEdge/pgedge-edw/internal/edw"
	"github.com/pgEdge/pgedge-edw/internal/extract"
	"github.com/pgEdge/pgedge-edw/internal/logging"
	"github.com/pgEdge/pgedge-edw/internal/warehouse"
)

// Name is the registry name of the model.
const Name = "kimball"

func init() {
	edw.Register(&Model{})
}

// Model implements edw.Model for the star schema.
type Model struct{}

// Name returns the model name.
func (m *Model) Name() string {
	return Name
}

// Description returns a human-readable description.
func (m *Model) Description() string {
	return "Star schema (DimDate, DimCustomer, DimProduct, FactSales)"
}

// Tables returns the star schema.
func (m *Model) Tables() []warehouse.Table {
	return Tables()
}

// Load rebuilds the star schema. Every input check runs before the
// artifact is reset, so a rejected extract leaves the previous artifact as
// it was. Dimensions are persisted first and their keys read back from the
// sink before facts are built.
func (m *Model) Load(ctx context.Context, sink warehouse.Sink, set *extract.Set, opts edw.LoadOptions) (*edw.LoadResult, error) {
	result := edw.NewResult(Name, opts)

	dates := dateRows(set)
	customerRows, err := CustomerRows(set.Customers)
	if err != nil {
		return nil, err
	}
	productRows, err := ProductRows(set.Products)
	if err != nil {
		return nil, err
	}
	builder, err := NewFactBuilder(set)
	if err != nil {
		return nil, err
	}

	if err := edw.Prepare(ctx, sink, Tables()); err != nil {
		return nil, err
	}

	if err := edw.InsertTable(ctx, sink, result, DimDate, dates, opts); err != nil {
		return nil, err
	}
	if err := edw.InsertTable(ctx, sink, result, DimCustomer, customerRows, opts); err != nil {
		return nil, err
	}
	if err := edw.InsertTable(ctx, sink, result, DimProduct, productRows, opts); err != nil {
		return nil, err
	}

	customers, err := warehouse.LoadKeyMap(ctx, sink, DimCustomerTable, "Customer_ID", "Customer_Key")
	if err != nil {
		return nil, err
	}
	products, err := warehouse.LoadKeyMap(ctx, sink, DimProductTable, "Product_ID", "Product_Key")
	if err != nil {
		return nil, err
	}

	facts, report := builder.Build(KeyMap(customers), KeyMap(products))
	report.Log()

	factRows := make([][]any, len(facts))
	for i, f := range facts {
		factRows[i] = f.Values()
	}
	if err := edw.InsertTable(ctx, sink, result, FactSales, factRows, opts); err != nil {
		return nil, err
	}

	for k, v := range report.Counts() {
		result.Anomalies[k] = v
	}

	if err := edw.SaveRunMetadata(ctx, sink, set, opts, result); err != nil {
		return nil, fmt.Errorf("failed to save run metadata: %w", err)
	}

	logging.Info().
		Str("artifact", sink.Name()).
		Str("run_id", result.RunID.String()).
		Int64("referential_anomalies", result.Anomalies[KeyReferentialAnomalies]).
		Int64("orphan_facts", result.Anomalies[KeyOrphanFacts]).
		Msg("Kimball load complete")

	return result, nil
}

// dateRows builds DimDate from the order date range. No orders means no
// dates.
func dateRows(set *extract.Set) [][]any {
	var rows [][]any
	if first, last, ok := set.OrderDateRange(); ok {
		for _, r := range datedim.Generate(first, last) {
			rows = append(rows, r.Values())
		}
	}
	return rows
}
