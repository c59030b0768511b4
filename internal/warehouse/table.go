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
	"fmt"
	"strings"
)

// ColumnType is a dialect-neutral column type.
type ColumnType int

// Column types understood by every dialect.
const (
	Text ColumnType = iota
	Integer
	Real
	Timestamp
	Date
)

func (t ColumnType) String() string {
	switch t {
	case Text:
		return "text"
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Timestamp:
		return "timestamp"
	case Date:
		return "date"
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// Column describes one table column.
type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool

	// AutoIncrement marks a storage-generated integer key. Such columns are
	// never written by the loader.
	AutoIncrement bool

	NotNull bool
	Unique  bool
}

// ForeignKey references a column of another table.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Table describes a warehouse table independently of the storage dialect.
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// InsertColumns returns the names of the columns the loader writes, in
// declaration order.
func (t Table) InsertColumns() []string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.AutoIncrement {
			continue
		}
		cols = append(cols, c.Name)
	}
	return cols
}

// RenderCreateTable builds a CREATE TABLE statement. quote renders an
// identifier and columnDef renders the type and key clause of one column.
func RenderCreateTable(t Table, quote func(string) string, columnDef func(Column) string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "CREATE TABLE %s (\n", quote(t.Name))

	defs := make([]string, 0, len(t.Columns)+len(t.ForeignKeys))
	for _, c := range t.Columns {
		def := quote(c.Name) + " " + columnDef(c)
		if c.NotNull && !c.PrimaryKey {
			def += " NOT NULL"
		}
		if c.Unique && !c.PrimaryKey {
			def += " UNIQUE"
		}
		defs = append(defs, "    "+def)
	}
	for _, fk := range t.ForeignKeys {
		defs = append(defs, fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s (%s)",
			quote(fk.Column), quote(fk.RefTable), quote(fk.RefColumn)))
	}

	b.WriteString(strings.Join(defs, ",\n"))
	b.WriteString("\n)")
	return b.String()
}
