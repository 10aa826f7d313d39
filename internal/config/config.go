// Package config provides Viper-based configuration loading for the exporter.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Source drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SQLiteConfig locates a TShock SQLite database.
type SQLiteConfig struct {
	// Path is the tshock.sqlite file.
	Path string `mapstructure:"path"`
	// BusyTimeout is how long a query waits on a locked database.
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// SourceConfig selects and configures the TShock database.
type SourceConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver   string         `mapstructure:"driver"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Postgres DatabaseConfig `mapstructure:"postgres"`
	// Timeout bounds connecting to the database.
	Timeout time.Duration `mapstructure:"timeout"`
}

// ExportConfig controls where and how players are written.
type ExportConfig struct {
	// Template is the player document every export starts from.
	Template string `mapstructure:"template"`
	// OutputDir receives one file per player plus the run manifest.
	OutputDir string `mapstructure:"output_dir"`
	// FormatVersion is the player file version to encode.
	FormatVersion int `mapstructure:"format_version"`
	// Workers bounds concurrent player assembly.
	Workers int `mapstructure:"workers"`
	// FailFast stops the run at the first failed player.
	FailFast bool `mapstructure:"fail_fast"`
}

// CatalogConfig configures item id resolution.
type CatalogConfig struct {
	// Names is an optional YAML list of id/name pairs.
	Names string `mapstructure:"names"`
	// AllowModded resolves ids above the vanilla range instead of dropping them.
	AllowModded bool `mapstructure:"allow_modded"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Export  ExportConfig  `mapstructure:"export"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateSource(c.Source); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateExport(c.Export); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSource(s SourceConfig) error {
	var errs []string
	switch s.Driver {
	case DriverSQLite:
		if s.SQLite.Path == "" {
			errs = append(errs, "source.sqlite.path must not be empty")
		}
		if s.SQLite.BusyTimeout < 0 {
			errs = append(errs, "source.sqlite.busy_timeout must not be negative")
		}
	case DriverPostgres:
		if err := validateDatabase(s.Postgres); err != nil {
			errs = append(errs, err.Error())
		}
	default:
		errs = append(errs, fmt.Sprintf("source.driver must be one of [sqlite, postgres], got %q", s.Driver))
	}
	if s.Timeout < 0 {
		errs = append(errs, "source.timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "source.postgres.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("source.postgres.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "source.postgres.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "source.postgres.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("source.postgres.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("source.postgres.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("source.postgres.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "source.postgres.min_conns must not exceed source.postgres.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateExport(e ExportConfig) error {
	var errs []string
	if e.Template == "" {
		errs = append(errs, "export.template must not be empty")
	}
	if e.OutputDir == "" {
		errs = append(errs, "export.output_dir must not be empty")
	}
	if e.FormatVersion < 1 {
		errs = append(errs, fmt.Sprintf("export.format_version must be >= 1, got %d", e.FormatVersion))
	}
	if e.Workers < 1 {
		errs = append(errs, fmt.Sprintf("export.workers must be >= 1, got %d", e.Workers))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// NewViper returns a Viper instance with defaults and TSEXPORT_ environment
// overrides applied, ready for a config file or flag bindings.
//
// Postcondition: Returns a non-nil Viper.
func NewViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with TSEXPORT_ prefix
	v.SetEnvPrefix("TSEXPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.driver", DriverSQLite)
	v.SetDefault("source.timeout", "30s")
	v.SetDefault("source.sqlite.path", "tshock.sqlite")
	v.SetDefault("source.sqlite.busy_timeout", "5s")

	v.SetDefault("source.postgres.host", "localhost")
	v.SetDefault("source.postgres.port", 5432)
	v.SetDefault("source.postgres.user", "tshock")
	v.SetDefault("source.postgres.password", "tshock")
	v.SetDefault("source.postgres.name", "tshock")
	v.SetDefault("source.postgres.sslmode", "disable")
	v.SetDefault("source.postgres.max_conns", 4)
	v.SetDefault("source.postgres.min_conns", 1)
	v.SetDefault("source.postgres.max_conn_lifetime", "1h")

	v.SetDefault("export.template", "configs/template.plr.yaml")
	v.SetDefault("export.output_dir", "out")
	v.SetDefault("export.format_version", 279)
	v.SetDefault("export.workers", 4)
	v.SetDefault("export.fail_fast", false)

	v.SetDefault("catalog.names", "")
	v.SetDefault("catalog.allow_modded", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
