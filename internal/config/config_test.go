package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the test and restores it on cleanup
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TIMESHEET_FILE", "TIMESHEET_SHEET", "TIMESHEET_LOG_LEVEL",
		"TIMESHEET_LOG_FORMAT", "TIMESHEET_LOG_FILE",
	} {
		t.Setenv(k, "")
	}
	// Keep godotenv away from any .env in the package directory.
	chdir(t, t.TempDir())
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMESHEET_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "timesheet.xlsx", cfg.File)
	assert.Equal(t, "Timesheet", cfg.Sheet)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_FileValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMESHEET_CONFIG", writeConfig(t, `
file = "/tmp/hours.xlsx"
sheet = "Hours"

[log]
level = "debug"
format = "json"
file = "-"
`))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/hours.xlsx", cfg.File)
	assert.Equal(t, "Hours", cfg.Sheet)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "-", cfg.Log.File)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMESHEET_CONFIG", writeConfig(t, `file = "a.xlsx"`))
	t.Setenv("TIMESHEET_FILE", "b.xlsx")
	t.Setenv("TIMESHEET_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "b.xlsx", cfg.File)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "Timesheet", cfg.Sheet)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("TIMESHEET_SHEET") //nolint:errcheck // godotenv does not override set variables
	t.Setenv("TIMESHEET_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, os.WriteFile(".env", []byte("TIMESHEET_SHEET=FromDotEnv\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("TIMESHEET_SHEET") }) //nolint:errcheck

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "FromDotEnv", cfg.Sheet)
}

func TestLoad_EmptyFileValuesFallBackToDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMESHEET_CONFIG", writeConfig(t, `
file = ""
[log]
level = ""
`))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "timesheet.xlsx", cfg.File)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_InvalidToml(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMESHEET_CONFIG", writeConfig(t, `file = `))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"xlsm allowed", func(c *Config) { c.File = "book.XLSM" }, ""},
		{"csv rejected", func(c *Config) { c.File = "times.csv" }, `timesheet file "times.csv" must be an .xlsx or .xlsm workbook`},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, `invalid log level "loud"`},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, `invalid log format "xml"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
