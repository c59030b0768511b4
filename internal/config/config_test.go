package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.InputDir != "data" {
		t.Errorf("Expected InputDir 'data', got '%s'", cfg.InputDir)
	}
	if cfg.Mode != ModeFullRebuild {
		t.Errorf("Expected Mode '%s', got '%s'", ModeFullRebuild, cfg.Mode)
	}
	if cfg.SourceSystem != "OLTP_ECOMMERCE" {
		t.Errorf("Expected SourceSystem 'OLTP_ECOMMERCE', got '%s'", cfg.SourceSystem)
	}
	if cfg.BatchSize != 500 {
		t.Errorf("Expected BatchSize 500, got %d", cfg.BatchSize)
	}

	if cfg.Inmon.Backend != "sqlite" || cfg.Inmon.Path != "inmon_edw.db" {
		t.Errorf("Unexpected Inmon defaults: %+v", cfg.Inmon)
	}
	if cfg.Kimball.Backend != "sqlite" || cfg.Kimball.Path != "kimball_dw.db" {
		t.Errorf("Unexpected Kimball defaults: %+v", cfg.Kimball)
	}

	if cfg.Generate.Customers != 100 {
		t.Errorf("Expected Generate.Customers 100, got %d", cfg.Generate.Customers)
	}
	if cfg.Generate.Products != 50 {
		t.Errorf("Expected Generate.Products 50, got %d", cfg.Generate.Products)
	}
	if cfg.Generate.Orders != 500 {
		t.Errorf("Expected Generate.Orders 500, got %d", cfg.Generate.Orders)
	}
	if cfg.Generate.Seed != 42 {
		t.Errorf("Expected Generate.Seed 42, got %d", cfg.Generate.Seed)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}, wantErr: false},
		{name: "missing input dir", mutate: func(c *Config) { c.InputDir = "" }, wantErr: true},
		{name: "incremental mode", mutate: func(c *Config) { c.Mode = "incremental" }, wantErr: true},
		{name: "zero batch", mutate: func(c *Config) { c.BatchSize = 0 }, wantErr: true},
		{name: "empty source system", mutate: func(c *Config) { c.SourceSystem = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWarehouse(t *testing.T) {
	tests := []struct {
		name    string
		w       WarehouseConfig
		wantErr bool
	}{
		{name: "sqlite", w: WarehouseConfig{Backend: "sqlite", Path: "x.db"}, wantErr: false},
		{name: "sqlite without path", w: WarehouseConfig{Backend: "sqlite"}, wantErr: true},
		{name: "postgres", w: WarehouseConfig{Backend: "postgres", DSN: "postgres://localhost/edw", Schema: "kimball"}, wantErr: false},
		{name: "postgres without dsn", w: WarehouseConfig{Backend: "postgres", Schema: "kimball"}, wantErr: true},
		{name: "postgres without schema", w: WarehouseConfig{Backend: "postgres", DSN: "postgres://localhost/edw"}, wantErr: true},
		{name: "no backend", w: WarehouseConfig{}, wantErr: true},
		{name: "unknown backend", w: WarehouseConfig{Backend: "oracle"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DefaultConfig().ValidateWarehouse(tt.w)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWarehouse() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateGenerate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidateGenerate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	cfg.Generate.Products = 3
	if err := cfg.ValidateGenerate(); err == nil {
		t.Error("Expected error for fewer than five products")
	}

	cfg = DefaultConfig()
	cfg.Generate.Customers = 0
	if err := cfg.ValidateGenerate(); err == nil {
		t.Error("Expected error for zero customers")
	}

	cfg = DefaultConfig()
	cfg.Generate.Orders = 0
	if err := cfg.ValidateGenerate(); err != nil {
		t.Errorf("zero orders is allowed: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "pgedge-edw.yaml")

	content := `
log_level: debug
input_dir: /srv/extracts
batch_size: 1000
kimball:
  backend: postgres
  dsn: postgres://localhost/edw
  schema: star
generate:
  orders: 20
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel 'debug', got '%s'", cfg.LogLevel)
	}
	if cfg.InputDir != "/srv/extracts" {
		t.Errorf("Expected InputDir '/srv/extracts', got '%s'", cfg.InputDir)
	}
	if cfg.BatchSize != 1000 {
		t.Errorf("Expected BatchSize 1000, got %d", cfg.BatchSize)
	}
	if cfg.Kimball.Backend != "postgres" || cfg.Kimball.Schema != "star" {
		t.Errorf("Unexpected Kimball config: %+v", cfg.Kimball)
	}
	// Values absent from the file keep their defaults.
	if cfg.Inmon.Path != "inmon_edw.db" {
		t.Errorf("Expected default Inmon.Path, got '%s'", cfg.Inmon.Path)
	}
	if cfg.Generate.Orders != 20 || cfg.Generate.Customers != 100 {
		t.Errorf("Unexpected Generate config: %+v", cfg.Generate)
	}
}

func TestTarget(t *testing.T) {
	cfg := DefaultConfig()

	w, err := cfg.Target("kimball")
	if err != nil {
		t.Fatalf("Target failed: %v", err)
	}
	w.Path = "star.db"
	if cfg.Kimball.Path != "star.db" {
		t.Error("Target should return a pointer into the config")
	}

	if _, err := cfg.Target("inmon"); err != nil {
		t.Errorf("Target(inmon) failed: %v", err)
	}
	if _, err := cfg.Target("vault"); err == nil {
		t.Error("Expected error for unknown model")
	}
}
