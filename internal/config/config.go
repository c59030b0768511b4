//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-edw.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ModeFullRebuild discards the previous warehouse artifact before loading.
// It is the only supported run mode.
const ModeFullRebuild = "full-rebuild"

// DefaultSourceSystem tags every normalized row with its origin system.
const DefaultSourceSystem = "OLTP_ECOMMERCE"

// Config holds all configuration for pgedge-edw.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// InputDir is the directory holding the four source extracts.
	InputDir string `mapstructure:"input_dir"`

	// Mode is the run mode. Only "full-rebuild" is accepted.
	Mode string `mapstructure:"mode"`

	// SourceSystem is stamped on normalized rows as provenance.
	SourceSystem string `mapstructure:"source_system"`

	// BatchSize is the number of rows per bulk insert.
	BatchSize int `mapstructure:"batch_size"`

	// Inmon is the warehouse target of the normalized pipeline.
	Inmon WarehouseConfig `mapstructure:"inmon"`

	// Kimball is the warehouse target of the dimensional pipeline.
	Kimball WarehouseConfig `mapstructure:"kimball"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`
}

// WarehouseConfig describes where a pipeline persists its artifact.
type WarehouseConfig struct {
	// Backend is the storage kind: sqlite or postgres.
	Backend string `mapstructure:"backend"`

	// Path is the SQLite database file (sqlite backend).
	Path string `mapstructure:"path"`

	// DSN is the PostgreSQL connection string (postgres backend).
	DSN string `mapstructure:"dsn"`

	// Schema is the PostgreSQL schema owned by the pipeline (postgres backend).
	Schema string `mapstructure:"schema"`
}

// GenerateConfig holds configuration for synthetic extract generation.
type GenerateConfig struct {
	// OutputDir is where the CSV extracts are written.
	OutputDir string `mapstructure:"output_dir"`

	Customers int `mapstructure:"customers"`
	Products  int `mapstructure:"products"`
	Orders    int `mapstructure:"orders"`

	// Seed makes generated extracts reproducible.
	Seed uint64 `mapstructure:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		InputDir:     "data",
		Mode:         ModeFullRebuild,
		SourceSystem: DefaultSourceSystem,
		BatchSize:    500,
		Inmon: WarehouseConfig{
			Backend: "sqlite",
			Path:    "inmon_edw.db",
			Schema:  "inmon",
		},
		Kimball: WarehouseConfig{
			Backend: "sqlite",
			Path:    "kimball_dw.db",
			Schema:  "kimball",
		},
		Generate: GenerateConfig{
			OutputDir: "data",
			Customers: 100,
			Products:  50,
			Orders:    500,
			Seed:      42,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-edw.yaml
// 3. ~/.config/pgedge-edw/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-edw")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-edw"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks settings shared by both pipelines.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir is required")
	}
	if c.Mode != ModeFullRebuild {
		return fmt.Errorf("mode must be '%s', got '%s'", ModeFullRebuild, c.Mode)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1")
	}
	if c.SourceSystem == "" {
		return fmt.Errorf("source_system is required")
	}
	return nil
}

// ValidateWarehouse checks the shared settings plus one warehouse target.
func (c *Config) ValidateWarehouse(w WarehouseConfig) error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch w.Backend {
	case "sqlite":
		if w.Path == "" {
			return fmt.Errorf("path is required for the sqlite backend")
		}
	case "postgres":
		if w.DSN == "" {
			return fmt.Errorf("dsn is required for the postgres backend")
		}
		if w.Schema == "" {
			return fmt.Errorf("schema is required for the postgres backend")
		}
	case "":
		return fmt.Errorf("backend is required")
	default:
		return fmt.Errorf("unknown backend '%s' (expected sqlite or postgres)", w.Backend)
	}
	return nil
}

// Target returns the warehouse configuration of the named pipeline.
func (c *Config) Target(model string) (*WarehouseConfig, error) {
	switch model {
	case "inmon":
		return &c.Inmon, nil
	case "kimball":
		return &c.Kimball, nil
	}
	return nil, fmt.Errorf("no warehouse configuration for model '%s'", model)
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	g := c.Generate
	if g.OutputDir == "" {
		return fmt.Errorf("generate.output_dir is required")
	}
	if g.Customers < 1 {
		return fmt.Errorf("generate.customers must be at least 1")
	}
	if g.Products < 5 {
		// Orders pick up to five distinct products.
		return fmt.Errorf("generate.products must be at least 5")
	}
	if g.Orders < 0 {
		return fmt.Errorf("generate.orders must be non-negative")
	}
	return nil
}
