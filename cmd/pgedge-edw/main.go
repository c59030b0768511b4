//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package main is the entry point for pgedge-edw.
package main

import (
	"fmt"
	"os"

	"github.com/pgEdge/pgedge-edw/internal/cli"

	// Register warehouse models
	_ "github.com/pgEdge/pgedge-edw/internal/edw/inmon"
	_ "github.com/pgEdge/pgedge-edw/internal/edw/kimball"

	// Register storage backends
	_ "github.com/pgEdge/pgedge-edw/internal/warehouse/postgres"
	_ "github.com/pgEdge/pgedge-edw/internal/warehouse/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
