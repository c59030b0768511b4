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
	"strings"
	"testing"

	"github.com/pgEdge/pgedge-edw/internal/config"
)

var testTable = Table{
	Name: "Fact",
	Columns: []Column{
		{Name: "Fact_Key", Type: Integer, AutoIncrement: true},
		{Name: "Natural_ID", Type: Text, NotNull: true, Unique: true},
		{Name: "Amount", Type: Real},
		{Name: "Parent_ID", Type: Text},
	},
	ForeignKeys: []ForeignKey{
		{Column: "Parent_ID", RefTable: "Parent", RefColumn: "ID"},
	},
}

func TestInsertColumnsSkipsAutoIncrement(t *testing.T) {
	got := strings.Join(testTable.InsertColumns(), ",")
	want := "Natural_ID,Amount,Parent_ID"
	if got != want {
		t.Errorf("InsertColumns() = %q, want %q", got, want)
	}
}

func TestRenderCreateTable(t *testing.T) {
	quote := func(s string) string { return "[" + s + "]" }
	def := func(c Column) string { return strings.ToUpper(c.Type.String()) }

	got := RenderCreateTable(testTable, quote, def)

	for _, want := range []string{
		"CREATE TABLE [Fact] (",
		"[Natural_ID] TEXT NOT NULL UNIQUE",
		"[Amount] REAL,",
		"FOREIGN KEY ([Parent_ID]) REFERENCES [Parent] ([ID])",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("DDL missing %q:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "\n)") {
		t.Errorf("DDL should end with a closing parenthesis:\n%s", got)
	}
}

func TestColumnTypeString(t *testing.T) {
	if Timestamp.String() != "timestamp" {
		t.Errorf("Timestamp.String() = %q", Timestamp.String())
	}
	if got := ColumnType(99).String(); got != "ColumnType(99)" {
		t.Errorf("unknown type String() = %q", got)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), config.WarehouseConfig{Backend: "nonexistent"})
	if err == nil {
		t.Fatal("Expected error for unknown backend")
	}
	if !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("Error should name the backend: %v", err)
	}
}

func TestProgressReporter(t *testing.T) {
	p := NewProgressReporter("Fact", 10, 0)
	p.Update(4)
	p.Update(6)
	if p.Rows() != 10 {
		t.Errorf("Rows() = %d, want 10", p.Rows())
	}
	p.Done()
}
