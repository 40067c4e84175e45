// Package config loads mayores.yaml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in a project directory.
const FileName = "mayores.yaml"

// EnvPrefix prefixes every environment override, e.g. MAYORES_DB_PATH.
const EnvPrefix = "mayores"

// Config represents the top-level mayores.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
	Ledger   LedgerConfig   `yaml:"ledger"`
}

// BusinessConfig identifies the business whose books are kept.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// StoreConfig locates the report database and the catalog file.
type StoreConfig struct {
	DBPath      string `yaml:"db_path"`
	CatalogPath string `yaml:"catalog_path"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Format string `yaml:"format"` // "text" or "json"
	Level  string `yaml:"level"`
}

// LedgerConfig holds defaults for report commands.
type LedgerConfig struct {
	DefaultUser string `yaml:"default_user"`
}

// overrides are read from MAYORES_* variables; empty values leave the
// file setting alone.
type overrides struct {
	BusinessName string `split_words:"true"`
	DBPath       string `split_words:"true"`
	CatalogPath  string `split_words:"true"`
	LogFormat    string `split_words:"true"`
	LogLevel     string `split_words:"true"`
	DefaultUser  string `split_words:"true"`
}

// Load reads a mayores.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{Name: businessName},
		Store: StoreConfig{
			DBPath:      "mayores.db",
			CatalogPath: "cuentas.csv",
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		Ledger: LedgerConfig{DefaultUser: "local"},
	}
}

// ApplyEnv overrides settings from MAYORES_* environment variables.
func (c *Config) ApplyEnv() error {
	var o overrides
	if err := envconfig.Process(EnvPrefix, &o); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Business.Name, o.BusinessName)
	set(&c.Store.DBPath, o.DBPath)
	set(&c.Store.CatalogPath, o.CatalogPath)
	set(&c.Log.Format, o.LogFormat)
	set(&c.Log.Level, o.LogLevel)
	set(&c.Ledger.DefaultUser, o.DefaultUser)
	return nil
}

// Resolve loads the configuration of the project in dir. A .env file in dir
// is read first, a missing mayores.yaml falls back to defaults, environment
// overrides are applied last, and relative paths are made relative to dir.
func Resolve(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default("")
	} else if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.Store.DBPath = within(dir, cfg.Store.DBPath)
	cfg.Store.CatalogPath = within(dir, cfg.Store.CatalogPath)
	return cfg, nil
}

func within(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
