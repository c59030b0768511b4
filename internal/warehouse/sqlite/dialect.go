//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sqlite

import (
	"strings"

	"github.com/pgEdge/pgedge-edw/internal/warehouse"
)

// Dialect renders SQLite DDL.
type Dialect struct{}

// Name returns "sqlite".
func (Dialect) Name() string {
	return Kind
}

// QuoteIdent double-quotes name.
func (Dialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// CreateTable renders t for SQLite.
func (d Dialect) CreateTable(t warehouse.Table) string {
	return warehouse.RenderCreateTable(t, d.QuoteIdent, columnDef)
}

func columnDef(c warehouse.Column) string {
	if c.AutoIncrement {
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	var def string
	switch c.Type {
	case warehouse.Integer:
		def = "INTEGER"
	case warehouse.Real:
		def = "REAL"
	case warehouse.Timestamp:
		def = "TIMESTAMP"
	case warehouse.Date:
		def = "DATE"
	default:
		def = "TEXT"
	}
	if c.PrimaryKey {
		def += " PRIMARY KEY"
	}
	return def
}
