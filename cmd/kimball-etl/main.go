//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package main rebuilds the kimball warehouse from the extracts in ./data.
// It accepts the same flags as 'pgedge-edw kimball'.
package main

import (
	"fmt"
	"os"

	"github.com/pgEdge/pgedge-edw/internal/cli"

	_ "github.com/pgEdge/pgedge-edw/internal/edw/kimball"

	// Register storage backends
	_ "github.com/pgEdge/pgedge-edw/internal/warehouse/postgres"
	_ "github.com/pgEdge/pgedge-edw/internal/warehouse/sqlite"
)

func main() {
	if err := cli.ExecutePipeline("kimball", os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
