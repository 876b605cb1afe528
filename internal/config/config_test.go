package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMainConfig_Defaults(t *testing.T) {
	// A missing file is not an error: defaults form a runnable config.
	cfg, err := LoadMainConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data/sales_data.txt", cfg.InputFile)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "data/enriched_sales_data.txt", cfg.SnapshotFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.ArchiveOnSuccess)

	assert.True(t, cfg.Catalog.Enabled)
	assert.Equal(t, "https://dummyjson.com/products", cfg.Catalog.BaseURL)
	assert.Equal(t, 100, cfg.Catalog.Limit)
	assert.Equal(t, 10, cfg.Catalog.TimeoutSeconds)

	assert.Equal(t, "sales_report.txt", cfg.Report.FileName)
	assert.Equal(t, "₹", cfg.Report.CurrencySymbol)
	assert.Equal(t, 5, cfg.Report.TopProducts)
	assert.Equal(t, 5, cfg.Report.TopCustomers)
	assert.Equal(t, 10, cfg.Report.LowQuantityThreshold)
	assert.False(t, cfg.Report.ExcelWorkbook)
}

func TestLoadMainConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
input_file: custom/sales.txt
log_level: debug
catalog:
  limit: 50
report:
  currency_symbol: "$"
  top_products: 3
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "custom/sales.txt", cfg.InputFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.Catalog.Limit)
	assert.Equal(t, "$", cfg.Report.CurrencySymbol)
	assert.Equal(t, 3, cfg.Report.TopProducts)

	// Untouched keys keep their defaults.
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, 5, cfg.Report.TopCustomers)
}

func TestLoadMainConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "input_file: [unterminated")

	cfg, err := LoadMainConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadMainConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty input file", `input_file: ""`},
		{"empty output dir", `output_dir: ""`},
		{"zero catalog limit", "catalog:\n  limit: 0"},
		{"negative timeout", "catalog:\n  timeout_seconds: -1"},
		{"zero top products", "report:\n  top_products: 0"},
		{"zero low quantity threshold", "report:\n  low_quantity_threshold: 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMainConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMainConfig_CatalogDisabledSkipsCatalogValidation(t *testing.T) {
	path := writeConfig(t, `
catalog:
  enabled: false
  base_url: ""
  limit: 0
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Catalog.Enabled)
}

func TestLoadMainConfig_EnvOverride(t *testing.T) {
	t.Setenv("SALESCLI_INPUT_FILE", "env/sales.txt")

	cfg, err := LoadMainConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env/sales.txt", cfg.InputFile)
}
