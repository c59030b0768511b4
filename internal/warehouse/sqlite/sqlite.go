//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package sqlite stores a warehouse artifact in a single SQLite file.
// Inserts run in one transaction per batch through a prepared statement;
// foreign keys are enforced on every connection.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/pgEdge/pgedge-edw/internal/config"
	"github.com/pgEdge/pgedge-edw/internal/logging"
	"github.com/pgEdge/pgedge-edw/internal/warehouse"
)

// Kind is the backend name used in configuration.
const Kind = "sqlite"

func init() {
	warehouse.Register(Kind, func(ctx context.Context, cfg config.WarehouseConfig) (warehouse.Sink, error) {
		return New(ctx, cfg.Path)
	})
}

// Sink is a SQLite file artifact.
type Sink struct {
	path string
	db   *sql.DB
}

// New opens (creating if needed) the SQLite file at path.
func New(ctx context.Context, path string) (*Sink, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite: path must not be empty")
	}
	s := &Sink{path: path}
	if err := s.open(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sink) open(ctx context.Context) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("sqlite: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(s.path))
	if err != nil {
		return fmt.Errorf("sqlite: open: %w", err)
	}
	// One connection keeps the pragma and the transaction on the same handle.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return fmt.Errorf("sqlite: ping: %w", err)
	}

	s.db = db
	return nil
}

func dsn(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)"
}

// Name returns the file path.
func (s *Sink) Name() string {
	return s.path
}

// Dialect returns the SQLite dialect.
func (s *Sink) Dialect() warehouse.Dialect {
	return Dialect{}
}

// Reset deletes the file with its journal files and reopens an empty one.
func (s *Sink) Reset(ctx context.Context) error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("sqlite: close: %w", err)
		}
		s.db = nil
	}

	for _, suffix := range []string{"", "-journal", "-wal", "-shm"} {
		if err := os.Remove(s.path + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("sqlite: remove %s: %w", s.path+suffix, err)
		}
	}

	logging.Debug().Str("path", s.path).Msg("Reset SQLite artifact")
	return s.open(ctx)
}

// Exec runs a statement.
func (s *Sink) Exec(ctx context.Context, stmt string) error {
	if strings.TrimSpace(stmt) == "" {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

// Insert writes rows in a single transaction. A failing row rolls back the
// whole batch.
func (s *Sink) Insert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("sqlite: insert into %s: columns must not be empty", table)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	d := Dialect{}
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.QuoteIdent(c)
		placeholders[i] = "?"
	}
	stmtSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdent(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if len(row) != len(columns) {
			_ = tx.Rollback()
			return 0, fmt.Errorf("sqlite: insert into %s: row length %d != columns length %d",
				table, len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return 0, classify(table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, classify(table, err)
	}
	return int64(len(rows)), nil
}

// Query runs q and calls fn for each row.
func (s *Sink) Query(ctx context.Context, q string, fn func(warehouse.RowScanner) error) error {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return fmt.Errorf("sqlite: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Close closes the database handle.
func (s *Sink) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// classify maps constraint failures onto the warehouse error types.
func classify(table string, err error) error {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return &warehouse.DuplicateKeyError{Table: table, Err: err}
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return &warehouse.ForeignKeyError{Table: table, Err: err}
		}
	}

	// Extended codes are not always reported; fall back to the message.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &warehouse.DuplicateKeyError{Table: table, Err: err}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &warehouse.ForeignKeyError{Table: table, Err: err}
	}
	return fmt.Errorf("sqlite: insert into %s: %w", table, err)
}
