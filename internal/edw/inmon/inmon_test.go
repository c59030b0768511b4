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
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-edw/internal/config"
	"github.com/pgEdge/pgedge-edw/internal/edw"
	"github.com/pgEdge/pgedge-edw/internal/extract"
	"github.com/pgEdge/pgedge-edw/internal/testutil"
	"github.com/pgEdge/pgedge-edw/internal/warehouse"
	"github.com/pgEdge/pgedge-edw/internal/warehouse/sqlite"
)

var loadTime = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

func testOptions() edw.LoadOptions {
	return edw.LoadOptions{
		SourceSystem: config.DefaultSourceSystem,
		Mode:         config.ModeFullRebuild,
		Batch:        warehouse.BatchConfig{BatchSize: 2, ProgressInterval: 10},
		Now:          func() time.Time { return loadTime },
	}
}

func readSet(t *testing.T, files map[string]string) *extract.Set {
	t.Helper()
	set, err := extract.ReadDir(context.Background(), testutil.WriteExtracts(t, files))
	require.NoError(t, err)
	return set
}

func newSink(t *testing.T) *sqlite.Sink {
	t.Helper()
	s, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "inmon_edw.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRegistered(t *testing.T) {
	m, err := edw.Get(Name)
	require.NoError(t, err)
	assert.Equal(t, Name, m.Name())
	assert.NotEmpty(t, m.Description())
	assert.Len(t, m.Tables(), 4)
}

func TestTables(t *testing.T) {
	tables := Tables()

	names := make([]string, len(tables))
	for i, tbl := range tables {
		names[i] = tbl.Name
	}
	assert.Equal(t, []string{CustomerTable, ProductTable, OrderHeaderTable, OrderItemTable}, names)

	item := tables[3]
	assert.Equal(t, []string{
		"Order_Item_ID", "Order_ID", "Product_ID", "Quantity", "Unit_Price",
		LoadDateColumn, SourceSystemColumn,
	}, item.InsertColumns())
	assert.True(t, item.Columns[0].PrimaryKey)
	assert.Equal(t, warehouse.Integer, item.Columns[3].Type)
	assert.Equal(t, warehouse.Real, item.Columns[4].Type)
	assert.Len(t, item.ForeignKeys, 2)

	header := tables[2]
	require.Len(t, header.ForeignKeys, 1)
	assert.Equal(t, CustomerTable, header.ForeignKeys[0].RefTable)
	assert.Empty(t, tables[0].ForeignKeys)
}

func TestTransformConservesRows(t *testing.T) {
	files := testutil.SingleOrderExtracts()
	files["customers.csv"] += "C1,Dup,Licate,dup@example.com,2 Side St,Springfield,IL,62701,2023-01-16 09:30:00\n"
	set := readSet(t, files)

	batches := Transform(set, Provenance{LoadDate: loadTime, SourceSystem: "SRC"})

	require.Len(t, batches, 4)
	for _, b := range batches {
		switch b.Table {
		case CustomerTable:
			assert.Len(t, b.Rows, 2, "duplicates are not removed")
		default:
			assert.Len(t, b.Rows, 1, b.Table)
		}
	}

	row := batches[0].Rows[0]
	require.Len(t, row, len(extract.Columns[extract.Customers])+2)
	assert.Equal(t, "C1", row[0])
	assert.Equal(t, loadTime, row[len(row)-2])
	assert.Equal(t, "SRC", row[len(row)-1])
}

func TestLoadSingleOrder(t *testing.T) {
	ctx := context.Background()
	sink := newSink(t)
	set := readSet(t, testutil.SingleOrderExtracts())

	result, err := (&Model{}).Load(ctx, sink, set, testOptions())
	require.NoError(t, err)

	for _, table := range []string{CustomerTable, ProductTable, OrderHeaderTable, OrderItemTable} {
		assert.EqualValues(t, 1, result.Rows(table), table)

		n, err := warehouse.CountRows(ctx, sink, table)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n, table)
	}

	var source string
	var quantity int64
	var price float64
	err = sink.Query(ctx, `SELECT "Source_System", "Quantity", "Unit_Price" FROM "Order_Item"`,
		func(r warehouse.RowScanner) error { return r.Scan(&source, &quantity, &price) })
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSourceSystem, source)
	assert.EqualValues(t, 3, quantity)
	assert.InDelta(t, 10.0, price, 1e-9)

	meta, err := warehouse.ReadMetadata(ctx, sink)
	require.NoError(t, err)
	assert.Equal(t, Name, meta["model"])
	assert.Equal(t, result.RunID.String(), meta["run_id"])
	assert.Equal(t, "2024-04-01T12:00:00Z", meta["loaded_at"])
	assert.Equal(t, config.ModeFullRebuild, meta["mode"])
	assert.Equal(t, "1", meta["order_items_rows"])
	assert.Len(t, meta["customers_xxh3"], 16)
}

func TestLoadIsRerunnable(t *testing.T) {
	ctx := context.Background()
	sink := newSink(t)
	set := readSet(t, testutil.SingleOrderExtracts())

	for i := 0; i < 2; i++ {
		_, err := (&Model{}).Load(ctx, sink, set, testOptions())
		require.NoError(t, err, "run %d", i)
	}

	n, err := warehouse.CountRows(ctx, sink, CustomerTable)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestLoadItemWithMissingOrderFails(t *testing.T) {
	files := testutil.SingleOrderExtracts()
	files["order_items.csv"] += "I2,O9,P1,1,10.00\n"
	set := readSet(t, files)

	_, err := (&Model{}).Load(context.Background(), newSink(t), set, testOptions())

	var fk *warehouse.ForeignKeyError
	require.ErrorAs(t, err, &fk)
	assert.Equal(t, OrderItemTable, fk.Table)
}

func TestLoadDuplicateKeyFails(t *testing.T) {
	files := testutil.SingleOrderExtracts()
	files["products.csv"] += "P1,Widget Again,Electronics,11.00,4.00\n"
	set := readSet(t, files)

	_, err := (&Model{}).Load(context.Background(), newSink(t), set, testOptions())

	var dup *warehouse.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, ProductTable, dup.Table)
}

func TestRunMissingExtractWritesNothing(t *testing.T) {
	files := testutil.SingleOrderExtracts()
	delete(files, "products.csv")
	dir := testutil.WriteExtracts(t, files)
	path := filepath.Join(t.TempDir(), "inmon_edw.db")

	_, err := edw.Run(context.Background(), &Model{}, dir,
		config.WarehouseConfig{Backend: sqlite.Kind, Path: path}, testOptions())

	var missing *extract.MissingExtractError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, extract.Products, missing.Entity)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "artifact must not be created")
}

func TestRun(t *testing.T) {
	dir := testutil.WriteExtracts(t, testutil.SingleOrderExtracts())
	path := filepath.Join(t.TempDir(), "inmon_edw.db")

	result, err := edw.Run(context.Background(), &Model{}, dir,
		config.WarehouseConfig{Backend: sqlite.Kind, Path: path}, testOptions())
	require.NoError(t, err)
	assert.Equal(t, Name, result.Model)
	assert.Len(t, result.Tables, 4)
	assert.FileExists(t, path)
}
