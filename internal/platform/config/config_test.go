// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/figures/internal/platform/config"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"SERVER_PORT", "ENVIRONMENT", "DEBUG", "LOG_FORMAT",
		"GOOGLE_SHEETS_API_KEY", "GOOGLE_SHEET_ID", "SHEETS_BASE_URL", "SHEETS_RANGE", "SHEETS_TIMEOUT",
		"IMAGE_HOST", "IMAGE_PLACEHOLDER", "REDIS_URL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "EXTRA_ORIGINS",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

/*
TestLoad_Defaults verifies the server starts without any spreadsheet settings.
*/
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "Sheet1!A2:I", cfg.SheetsRange)
	assert.Equal(t, 10*time.Second, cfg.SheetsTimeout)
	assert.Empty(t, cfg.SheetsAPIKey)
	assert.Empty(t, cfg.SheetID)
	assert.Empty(t, cfg.AllowedOrigins())
}

/*
TestLoad_Overrides verifies environment values win over defaults.
*/
func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("GOOGLE_SHEETS_API_KEY", "key-123")
	t.Setenv("GOOGLE_SHEET_ID", "sheet-abc")
	t.Setenv("SHEETS_RANGE", "Figures!A2:I")
	t.Setenv("EXTRA_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())

	sheets := cfg.Sheets()
	assert.Equal(t, "key-123", sheets.Credential)
	assert.Equal(t, "sheet-abc", sheets.SheetID)
	assert.Equal(t, "Figures!A2:I", sheets.Range)
	assert.Equal(t, "https://sheets.googleapis.com/v4", sheets.BaseURL)
}

/*
TestLoad_Validation collects every invalid value in one error.
*/
func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{"port_out_of_range", map[string]string{"SERVER_PORT": "70000"}, "SERVER_PORT"},
		{"port_not_numeric", map[string]string{"SERVER_PORT": "http"}, "SERVER_PORT"},
		{"unknown_log_format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
		{"zero_timeout", map[string]string{"SHEETS_TIMEOUT": "0s"}, "SHEETS_TIMEOUT"},
		{"negative_burst", map[string]string{"RATE_LIMIT_BURST": "-1"}, "RATE_LIMIT_BURST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for name, value := range tt.env {
				t.Setenv(name, value)
			}

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

/*
TestLoadDotEnv reads a file without overriding the process environment.
*/
func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_SHEET_ID", "from-process")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GOOGLE_SHEETS_API_KEY=from-file\nGOOGLE_SHEET_ID=from-file\n"), 0o600))

	require.NoError(t, config.LoadDotEnv(path))
	t.Cleanup(func() { _ = os.Unsetenv("GOOGLE_SHEETS_API_KEY") })

	assert.Equal(t, "from-file", os.Getenv("GOOGLE_SHEETS_API_KEY"))
	assert.Equal(t, "from-process", os.Getenv("GOOGLE_SHEET_ID"))
}

/*
TestLoadDotEnv_MissingFile is not an error.
*/
func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, config.LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}
