//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import "fmt"

// DuplicateKeyError reports a primary-key or unique collision rejected by
// the sink. The driver error is kept verbatim in Err.
type DuplicateKeyError struct {
	Table string
	Err   error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key in %s: %v", e.Table, e.Err)
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

// ForeignKeyError reports a row rejected by a foreign-key constraint.
type ForeignKeyError struct {
	Table string
	Err   error
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("foreign key violation in %s: %v", e.Table, e.Err)
}

func (e *ForeignKeyError) Unwrap() error {
	return e.Err
}
