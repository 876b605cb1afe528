// =============================================================================
// Sales Analytics - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration. The
// config lives in a single YAML file (default: config.yaml) and every
// setting has a sensible default, so the tool runs without any config
// file at all.
//
// Settings can also be overridden through the environment with the
// SALESCLI_ prefix (e.g. SALESCLI_INPUT_FILE).
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// MainConfig holds the application configuration.
type MainConfig struct {
	// InputFile is the pipe-delimited sales data file to process.
	InputFile string `mapstructure:"input_file" yaml:"input_file"`

	// OutputDir is the directory where the report files are written.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// SnapshotFile is where the enriched data snapshot is persisted.
	SnapshotFile string `mapstructure:"snapshot_file" yaml:"snapshot_file"`

	// ArchiveDir receives the input file after a successful run when
	// ArchiveOnSuccess is set.
	ArchiveDir string `mapstructure:"archive_dir" yaml:"archive_dir"`

	// ArchiveOnSuccess moves the input file to ArchiveDir after a
	// successful run.
	ArchiveOnSuccess bool `mapstructure:"archive_on_success" yaml:"archive_on_success"`

	// LogLevel controls logging verbosity: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// Catalog configures the external product catalog fetch.
	Catalog CatalogSettings `mapstructure:"catalog" yaml:"catalog"`

	// Report configures report rendering.
	Report ReportSettings `mapstructure:"report" yaml:"report"`
}

// CatalogSettings configures the external product catalog client. The
// endpoint is configuration rather than a constant so tests can point the
// client at a local double.
type CatalogSettings struct {
	// Enabled toggles the catalog fetch. When false the run proceeds with
	// zero enrichment matches.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// BaseURL is the product catalog endpoint.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Limit is the maximum number of products to fetch.
	Limit int `mapstructure:"limit" yaml:"limit"`

	// TimeoutSeconds bounds the single catalog request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// ReportSettings configures report rendering.
type ReportSettings struct {
	// FileName is the report file name pattern. Supports {uuid} and
	// {timestamp} placeholders.
	FileName string `mapstructure:"file_name" yaml:"file_name"`

	// CurrencySymbol prefixes every rendered monetary value.
	CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`

	// TopProducts is the N for the top products table.
	TopProducts int `mapstructure:"top_products" yaml:"top_products"`

	// TopCustomers is the N for the top customers table.
	TopCustomers int `mapstructure:"top_customers" yaml:"top_customers"`

	// LowQuantityThreshold marks products as low performing below it.
	LowQuantityThreshold int `mapstructure:"low_quantity_threshold" yaml:"low_quantity_threshold"`

	// ExcelWorkbook also writes the report as an XLSX workbook.
	ExcelWorkbook bool `mapstructure:"excel_workbook" yaml:"excel_workbook"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// defaults maps config keys to their default values, applied through
// viper so file and environment values override them.
var defaults = map[string]interface{}{
	"input_file":                    "data/sales_data.txt",
	"output_dir":                    "output",
	"snapshot_file":                 "data/enriched_sales_data.txt",
	"archive_dir":                   "data/archive",
	"archive_on_success":            false,
	"log_level":                     "info",
	"catalog.enabled":               true,
	"catalog.base_url":              "https://dummyjson.com/products",
	"catalog.limit":                 100,
	"catalog.timeout_seconds":       10,
	"report.file_name":              "sales_report.txt",
	"report.currency_symbol":        "₹",
	"report.top_products":           5,
	"report.top_customers":          5,
	"report.low_quantity_threshold": 10,
	"report.excel_workbook":         false,
}

// =============================================================================
// LOADING
// =============================================================================

// LoadMainConfig loads the configuration from the given YAML file, applying
// defaults and SALESCLI_ environment overrides. A missing file is not an
// error: the defaults describe a complete, runnable configuration.
func LoadMainConfig(path string) (*MainConfig, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("SALESCLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg MainConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for values the pipeline cannot work
// with.
func (c *MainConfig) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("input_file must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.SnapshotFile == "" {
		return fmt.Errorf("snapshot_file must not be empty")
	}
	if c.Report.FileName == "" {
		return fmt.Errorf("report.file_name must not be empty")
	}
	if c.Catalog.Enabled {
		if c.Catalog.BaseURL == "" {
			return fmt.Errorf("catalog.base_url must not be empty when the catalog is enabled")
		}
		if c.Catalog.Limit <= 0 {
			return fmt.Errorf("catalog.limit must be positive, got %d", c.Catalog.Limit)
		}
		if c.Catalog.TimeoutSeconds <= 0 {
			return fmt.Errorf("catalog.timeout_seconds must be positive, got %d", c.Catalog.TimeoutSeconds)
		}
	}
	if c.Report.TopProducts <= 0 {
		return fmt.Errorf("report.top_products must be positive, got %d", c.Report.TopProducts)
	}
	if c.Report.TopCustomers <= 0 {
		return fmt.Errorf("report.top_customers must be positive, got %d", c.Report.TopCustomers)
	}
	if c.Report.LowQuantityThreshold <= 0 {
		return fmt.Errorf("report.low_quantity_threshold must be positive, got %d", c.Report.LowQuantityThreshold)
	}
	return nil
}
