//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides utilities for integration testing.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// DefaultTestConnString is the default connection string for tests.
	// Override with EDW_TEST_CONN environment variable.
	DefaultTestConnString = "postgres://postgres@localhost:5432/postgres"

	// TestSchemaPrefix is the prefix for test schemas.
	TestSchemaPrefix = "edw_test_"
)

// PostgresAvailable checks if PostgreSQL is available for testing.
// Returns the connection string if available, empty string otherwise.
func PostgresAvailable() string {
	connStr := os.Getenv("EDW_TEST_CONN")
	if connStr == "" {
		connStr = DefaultTestConnString
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return ""
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return ""
	}

	return connStr
}

// SkipIfNoPostgres skips the test if PostgreSQL is not available.
func SkipIfNoPostgres(t *testing.T) string {
	connStr := PostgresAvailable()
	if connStr == "" {
		t.Skip("PostgreSQL not available, skipping integration test")
	}
	return connStr
}

// TestSchemaName returns a random schema name for one test. The schema is
// dropped when the test passes; on failure it remains for diagnostics.
func TestSchemaName(t *testing.T, connStr, label string) string {
	t.Helper()

	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		t.Fatalf("Failed to generate random schema name: %v", err)
	}
	schema := TestSchemaPrefix + label + "_" + hex.EncodeToString(randomBytes)

	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("Test failed - keeping schema %s for diagnostics", schema)
			return
		}
		DropTestSchema(t, connStr, schema)
	})

	return schema
}

// DropTestSchema drops the test schema.
func DropTestSchema(t *testing.T, connStr, schema string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Logf("Warning: Failed to connect to drop test schema: %v", err)
		return
	}
	defer pool.Close()

	_, err = pool.Exec(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schema))
	if err != nil {
		t.Logf("Warning: Failed to drop test schema: %v", err)
	}
}

// WriteExtracts writes CSV extracts into a fresh temporary directory and
// returns its path. Keys are file names, e.g. "customers.csv".
func WriteExtracts(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

// ExtractHeaders are the header rows of the four extract files.
var ExtractHeaders = map[string]string{
	"customers.csv":   "customer_id,first_name,last_name,email,address,city,state,zip_code,created_at\n",
	"products.csv":    "product_id,product_name,category,price,cost\n",
	"orders.csv":      "order_id,customer_id,order_date,status\n",
	"order_items.csv": "order_item_id,order_id,product_id,quantity,unit_price\n",
}

// SingleOrderExtracts is one customer buying three units of one product
// on 2024-03-05.
func SingleOrderExtracts() map[string]string {
	return map[string]string{
		"customers.csv": ExtractHeaders["customers.csv"] +
			"C1,Ada,Lovelace,ada@example.com,1 Main St,Springfield,IL,62701,2023-01-15 09:30:00\n",
		"products.csv": ExtractHeaders["products.csv"] +
			"P1,Widget,Electronics,10.00,4.00\n",
		"orders.csv": ExtractHeaders["orders.csv"] +
			"O1,C1,2024-03-05 14:22:10,Completed\n",
		"order_items.csv": ExtractHeaders["order_items.csv"] +
			"I1,O1,P1,3,10.00\n",
	}
}
