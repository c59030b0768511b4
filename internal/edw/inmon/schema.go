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
	"github.com/pgEdge/pgedge-edw/internal/extract"
	"github.com/pgEdge/pgedge-edw/internal/warehouse"
)

// Table names.
const (
	CustomerTable    = "Customer"
	ProductTable     = "Product"
	OrderHeaderTable = "Order_Header"
	OrderItemTable   = "Order_Item"
)

// Provenance columns appended to every table.
const (
	LoadDateColumn     = "EDW_Load_Date"
	SourceSystemColumn = "Source_System"
)

// columnTypes lists the non-text source columns.
var columnTypes = map[string]warehouse.ColumnType{
	"created_at": warehouse.Timestamp,
	"price":      warehouse.Real,
	"cost":       warehouse.Real,
	"order_date": warehouse.Timestamp,
	"quantity":   warehouse.Integer,
	"unit_price": warehouse.Real,
}

// entityTables maps each extract to its normalized table, in load order.
var entityTables = []struct {
	entity extract.Entity
	table  string
}{
	{extract.Customers, CustomerTable},
	{extract.Products, ProductTable},
	{extract.Orders, OrderHeaderTable},
	{extract.OrderItems, OrderItemTable},
}

// foreignKeys declares the enforced references between normalized tables.
var foreignKeys = map[string][]warehouse.ForeignKey{
	OrderHeaderTable: {
		{Column: "Customer_ID", RefTable: CustomerTable, RefColumn: "Customer_ID"},
	},
	OrderItemTable: {
		{Column: "Order_ID", RefTable: OrderHeaderTable, RefColumn: "Order_ID"},
		{Column: "Product_ID", RefTable: ProductTable, RefColumn: "Product_ID"},
	},
}

// Tables returns the normalized schema in creation order. Each table
// mirrors its extract column for column, the first column being the
// primary key, followed by the provenance columns.
func Tables() []warehouse.Table {
	tables := make([]warehouse.Table, 0, len(entityTables))
	for _, et := range entityTables {
		tables = append(tables, tableFor(et.entity, et.table))
	}
	return tables
}

func tableFor(e extract.Entity, name string) warehouse.Table {
	src := extract.Columns[e]
	cols := make([]warehouse.Column, 0, len(src)+2)
	for i, c := range src {
		typ, ok := columnTypes[c]
		if !ok {
			typ = warehouse.Text
		}
		cols = append(cols, warehouse.Column{
			Name:       extract.TargetColumn(c),
			Type:       typ,
			PrimaryKey: i == 0,
			NotNull:    i == 0,
		})
	}
	cols = append(cols,
		warehouse.Column{Name: LoadDateColumn, Type: warehouse.Timestamp, NotNull: true},
		warehouse.Column{Name: SourceSystemColumn, Type: warehouse.Text, NotNull: true},
	)

	return warehouse.Table{
		Name:        name,
		Columns:     cols,
		ForeignKeys: foreignKeys[name],
	}
}
