//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-edw.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-edw/internal/config"
	"github.com/pgEdge/pgedge-edw/internal/edw"
	"github.com/pgEdge/pgedge-edw/internal/logging"
	"github.com/pgEdge/pgedge-edw/pkg/version"
)

var (
	// Global flags
	cfgFile  string
	inputDir string
	logLevel string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-edw",
		Short: "Load transactional extracts into Inmon and Kimball warehouses",
		Long: `pgedge-edw reads four CSV extracts of an e-commerce system
(customers, products, orders, order_items) and rebuilds two warehouses
from them: a normalized 3NF enterprise warehouse (inmon) and a star
schema (kimball).

Every load is a full rebuild. The previous artifact is discarded before
the tables are created, so reruns over the same extracts are idempotent.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecutePipeline runs a single pipeline subcommand with the process
// arguments as its flags.
func ExecutePipeline(name string, args []string) error {
	rootCmd.SetArgs(append([]string{name}, args...))
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-edw.yaml)")
	rootCmd.PersistentFlags().StringVar(&inputDir, "input-dir", "",
		"directory holding the CSV extracts (default: data)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(newLoadCmd("inmon",
		"Rebuild the normalized 3NF warehouse",
		"inmon_edw.db"))
	rootCmd.AddCommand(newLoadCmd("kimball",
		"Rebuild the star schema warehouse",
		"kimball_dw.db"))
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if inputDir != "" {
		cfg.InputDir = inputDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available warehouse models",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available warehouse models:")
		cmd.Println()
		for _, name := range edw.List() {
			m, err := edw.Get(name)
			if err != nil {
				continue
			}
			cmd.Printf("  %-8s - %s\n", m.Name(), m.Description())
		}
	},
}
