// Package config loads timesheet settings.
//
// Values come from defaults, then the TOML file, then environment variables
// (a .env file in the working directory is honored). Later sources win.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config holds the application configuration.
type Config struct {
	File  string    `toml:"file"`
	Sheet string    `toml:"sheet"`
	Log   LogConfig `toml:"log"`
}

// LogConfig controls the structured log output.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
	File   string `toml:"file"`   // "-" disables logging
}

// overrides are read from the environment; empty values are ignored.
type overrides struct {
	File      string `env:"TIMESHEET_FILE"`
	Sheet     string `env:"TIMESHEET_SHEET"`
	LogLevel  string `env:"TIMESHEET_LOG_LEVEL"`
	LogFormat string `env:"TIMESHEET_LOG_FORMAT"`
	LogFile   string `env:"TIMESHEET_LOG_FILE"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		File:  "timesheet.xlsx",
		Sheet: "Timesheet",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   defaultLogFile(),
		},
	}
}

// Dir returns the per-user configuration directory (…/timesheet).
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(base, "timesheet"), nil
}

// Path returns the config file location, honoring TIMESHEET_CONFIG.
func Path() (string, error) {
	if p := os.Getenv("TIMESHEET_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func defaultLogFile() string {
	dir, err := Dir()
	if err != nil {
		return "-"
	}
	return filepath.Join(dir, "timesheet.log")
}

// Load builds the configuration. A missing config file is not an error.
func Load() (*Config, error) {
	// .env is optional.
	_ = godotenv.Load() //nolint:errcheck

	path, err := Path()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	var o overrides
	if err := env.Load(&o, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg.apply(o)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) apply(o overrides) {
	if o.File != "" {
		c.File = o.File
	}
	if o.Sheet != "" {
		c.Sheet = o.Sheet
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Log.Format = o.LogFormat
	}
	if o.LogFile != "" {
		c.Log.File = o.LogFile
	}
}

// fillDefaults restores values a config file set to empty.
func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.File == "" {
		c.File = d.File
	}
	if c.Sheet == "" {
		c.Sheet = d.Sheet
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Log.File == "" {
		c.Log.File = d.Log.File
	}
}

// Validate checks the configuration for values the program cannot use.
func (c *Config) Validate() error {
	switch strings.ToLower(filepath.Ext(c.File)) {
	case ".xlsx", ".xlsm":
	default:
		return fmt.Errorf("timesheet file %q must be an .xlsx or .xlsm workbook", c.File)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	return nil
}
