//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package extract

import "fmt"

// MissingExtractError reports a required extract file that does not exist.
type MissingExtractError struct {
	Entity Entity
	Path   string
}

func (e *MissingExtractError) Error() string {
	return fmt.Sprintf("missing %s extract: %s", e.Entity, e.Path)
}

// SchemaMismatchError reports a required column absent from an extract header.
type SchemaMismatchError struct {
	Entity Entity
	Column string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s extract: required column %q not found in header", e.Entity, e.Column)
}

// ParseError reports a value that cannot be parsed as its declared type.
// Row is the 1-based data row, not counting the header.
type ParseError struct {
	Entity Entity
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s extract: row %d, column %s: cannot parse %q: %v",
		e.Entity, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
