//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package postgres stores a warehouse artifact as one PostgreSQL schema.
// Rows are bulk loaded with COPY.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-edw/internal/config"
	"github.com/pgEdge/pgedge-edw/internal/logging"
	"github.com/pgEdge/pgedge-edw/internal/warehouse"
)

// Kind is the backend name used in configuration.
const Kind = "postgres"

// SQLSTATE codes for constraint violations.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func init() {
	warehouse.Register(Kind, func(ctx context.Context, cfg config.WarehouseConfig) (warehouse.Sink, error) {
		return New(ctx, cfg.DSN, cfg.Schema)
	})
}

// Sink is a PostgreSQL schema artifact.
type Sink struct {
	schema string
	pool   *pgxpool.Pool
}

// New connects to the database at dsn. The schema is created by Reset.
func New(ctx context.Context, dsn, schema string) (*Sink, error) {
	if strings.TrimSpace(schema) == "" {
		return nil, fmt.Errorf("postgres: schema must not be empty")
	}
	pool, err := Connect(ctx, dsn, schema)
	if err != nil {
		return nil, err
	}
	return &Sink{schema: schema, pool: pool}, nil
}

// Name returns the schema name.
func (s *Sink) Name() string {
	return s.schema
}

// Dialect returns the PostgreSQL dialect.
func (s *Sink) Dialect() warehouse.Dialect {
	return Dialect{}
}

// Reset drops the schema with everything in it and recreates it empty.
func (s *Sink) Reset(ctx context.Context) error {
	q := Dialect{}.QuoteIdent(s.schema)
	if _, err := s.pool.Exec(ctx, "DROP SCHEMA IF EXISTS "+q+" CASCADE"); err != nil {
		return fmt.Errorf("postgres: drop schema %s: %w", s.schema, err)
	}
	if _, err := s.pool.Exec(ctx, "CREATE SCHEMA "+q); err != nil {
		return fmt.Errorf("postgres: create schema %s: %w", s.schema, err)
	}

	logging.Debug().Str("schema", s.schema).Msg("Reset PostgreSQL artifact")
	return nil
}

// Exec runs a statement.
func (s *Sink) Exec(ctx context.Context, stmt string) error {
	if strings.TrimSpace(stmt) == "" {
		return nil
	}
	if _, err := s.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("postgres: exec: %w", err)
	}
	return nil
}

// Insert copies rows into table. COPY is atomic, so a failing row rejects
// the whole batch.
func (s *Sink) Insert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("postgres: insert into %s: columns must not be empty", table)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	n, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{s.schema, table},
		columns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, classify(table, err)
	}
	return n, nil
}

// Query runs q and calls fn for each row.
func (s *Sink) Query(ctx context.Context, q string, fn func(warehouse.RowScanner) error) error {
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return fmt.Errorf("postgres: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Close closes the pool.
func (s *Sink) Close() error {
	s.pool.Close()
	return nil
}

func classify(table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &warehouse.DuplicateKeyError{Table: table, Err: err}
		case codeForeignKeyViolation:
			return &warehouse.ForeignKeyError{Table: table, Err: err}
		}
	}
	return fmt.Errorf("postgres: copy into %s: %w", table, err)
}
