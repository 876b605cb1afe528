// =============================================================================
// Sales Analytics CLI - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// is the base all other commands attach to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (salescli)
//   ├── processCmd (salescli process)
//   ├── validateCmd (salescli validate)
//   └── versionCmd (salescli version)
//
// The root command owns the global flags (--config, --verbose) and the
// viper environment wiring; loading the effective configuration happens in
// the individual commands.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cfgFile holds the path to the configuration file. Overridden with the
// --config flag.
var cfgFile string

// verbose forces debug logging when set.
var verbose bool

// rootCmd represents the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "salescli",
	Short: "Sales Analytics - turn pipe-delimited sales exports into analytics reports",
	Long: `Sales Analytics is a CLI tool that ingests a pipe-delimited sales
transaction file, cleans and validates it, enriches records against an
external product catalog, and emits a multi-section analytics report.

Key Features:
  - Encoding-tolerant ingestion of legacy exports
  - Validation with invalid-record accounting and optional filters
  - Revenue, region, product, customer, and daily-trend analytics
  - Best-effort catalog enrichment with a persisted snapshot
  - Text report output, optionally mirrored as an XLSX workbook

Example Usage:
  salescli process                     # Run the full pipeline
  salescli process --config ./my.yaml  # Use a custom configuration file
  salescli process --no-prompt         # Skip the interactive filter prompt
  salescli validate                    # Validate configuration without processing`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	cobra.OnInitialize(initConfig)
}

// initConfig wires viper's environment handling so SALESCLI_* variables
// are visible to every command before configuration is loaded.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.AutomaticEnv()
}
