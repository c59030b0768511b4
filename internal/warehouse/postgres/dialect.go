//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-edw/internal/warehouse"
)

// Dialect renders PostgreSQL DDL.
type Dialect struct{}

// Name returns "postgres".
func (Dialect) Name() string {
	return Kind
}

// QuoteIdent quotes name with pgx's identifier sanitizer.
func (Dialect) QuoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// CreateTable renders t for PostgreSQL.
func (d Dialect) CreateTable(t warehouse.Table) string {
	return warehouse.RenderCreateTable(t, d.QuoteIdent, columnDef)
}

func columnDef(c warehouse.Column) string {
	if c.AutoIncrement {
		return "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
	}

	var def string
	switch c.Type {
	case warehouse.Integer:
		def = "BIGINT"
	case warehouse.Real:
		def = "DOUBLE PRECISION"
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
