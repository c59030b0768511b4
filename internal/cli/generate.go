//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-edw/internal/datagen"
	"github.com/pgEdge/pgedge-edw/internal/logging"
)

var (
	genOutputDir string
	genCustomers int
	genProducts  int
	genOrders    int
	genSeed      uint64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write synthetic CSV extracts",
	Long: `Write customers.csv, products.csv, orders.csv and order_items.csv
with synthetic data. The same seed always produces the same extracts
for a given day.

Example:
  pgedge-edw generate --output-dir data --orders 1000 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genOutputDir, "output-dir", "",
		"directory to write the extracts into (default: data)")
	generateCmd.Flags().IntVar(&genCustomers, "customers", 0,
		"number of customers (default: 100)")
	generateCmd.Flags().IntVar(&genProducts, "products", 0,
		"number of products (default: 50)")
	generateCmd.Flags().IntVar(&genOrders, "orders", -1,
		"number of orders (default: 500)")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0,
		"random seed (default: 42)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if genOutputDir != "" {
		cfg.Generate.OutputDir = genOutputDir
	}
	if genCustomers > 0 {
		cfg.Generate.Customers = genCustomers
	}
	if genProducts > 0 {
		cfg.Generate.Products = genProducts
	}
	if genOrders >= 0 {
		cfg.Generate.Orders = genOrders
	}
	if cmd.Flags().Changed("seed") {
		cfg.Generate.Seed = genSeed
	}

	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	now := time.Now().UTC().Truncate(24 * time.Hour)
	set, err := datagen.NewGenerator(cfg.Generate, now).Write(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate extracts: %w", err)
	}

	logging.Info().
		Str("output_dir", cfg.Generate.OutputDir).
		Int("customers", len(set.Customers)).
		Int("products", len(set.Products)).
		Int("orders", len(set.Orders)).
		Int("order_items", len(set.Items)).
		Msg("Data generation complete")

	return nil
}
