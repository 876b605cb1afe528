// =============================================================================
// Sales Analytics CLI - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the whole analytics
// pipeline over a single sales data file.
//
// PROCESSING PIPELINE:
//    1. Load configuration
//    2. Read the sales data file (encoding-tolerant)
//    3. Parse pipe-delimited rows into transactions
//    4. Gather optional filters (flags or interactive prompt)
//    5. Validate and filter transactions
//    6. Fetch the external product catalog (best-effort)
//    7. Enrich transactions and persist the snapshot
//    8. Write the text report
//    9. Optionally write the XLSX workbook
//   10. Optionally archive the input file
//
// Every stage degrades instead of aborting: a missing input file yields an
// empty run, a failed catalog fetch yields zero enrichment matches, and
// malformed rows are only visible as aggregate counts.
//
// =============================================================================

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rgupta-dev/sales-analytics/internal/catalog"
	"github.com/rgupta-dev/sales-analytics/internal/config"
	"github.com/rgupta-dev/sales-analytics/internal/enrich"
	"github.com/rgupta-dev/sales-analytics/internal/logger"
	"github.com/rgupta-dev/sales-analytics/internal/parser"
	"github.com/rgupta-dev/sales-analytics/internal/reader"
	"github.com/rgupta-dev/sales-analytics/internal/report"
	"github.com/rgupta-dev/sales-analytics/internal/types"
	"github.com/rgupta-dev/sales-analytics/internal/validation"
	"github.com/rgupta-dev/sales-analytics/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputFile overrides the configured sales data file.
var inputFile string

// noPrompt skips the interactive filter prompt.
var noPrompt bool

// filterRegion, filterMin, and filterMax set filters directly from the
// command line. Providing any of them also skips the prompt.
var filterRegion string
var filterMin string
var filterMax string

// xlsxExport also writes the report as an XLSX workbook.
var xlsxExport bool

// dryRun runs the pipeline without writing any files.
var dryRun bool

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the full sales analytics pipeline",
	Long: `The process command reads the configured sales data file, validates and
optionally filters its transactions, enriches them against the external
product catalog, and writes the analytics report.

Failures degrade rather than abort: a missing input file produces an empty
report, and a failed catalog fetch produces a report with zero enrichment
matches. Malformed rows are silently dropped and surface only as aggregate
counts.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&inputFile, "input", "", "Sales data file (overrides the configured input_file)")
	processCmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Skip the interactive filter prompt")
	processCmd.Flags().StringVar(&filterRegion, "region", "", "Keep only transactions from this region")
	processCmd.Flags().StringVar(&filterMin, "min-amount", "", "Keep only transactions with amount >= this value")
	processCmd.Flags().StringVar(&filterMax, "max-amount", "", "Keep only transactions with amount <= this value")
	processCmd.Flags().BoolVar(&xlsxExport, "xlsx", false, "Also write the report as an XLSX workbook")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the pipeline without writing any files")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the pipeline end to end.
func runProcess() error {
	startTime := time.Now()

	fmt.Println("========================================")
	fmt.Println("        SALES ANALYTICS SYSTEM")
	fmt.Println("========================================")
	fmt.Println()

	// STEP 1: configuration and logging.
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if inputFile != "" {
		cfg.InputFile = inputFile
	}
	if xlsxExport {
		cfg.Report.ExcelWorkbook = true
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if verbose {
		level = zerolog.DebugLevel
	}
	log := logger.New(level)

	log.Debug().Msg(spew.Sdump(cfg))

	// STEP 2: read raw lines. A missing or undecodable file is reported
	// and the run continues with zero transactions.
	fmt.Println("[1/10] Reading sales data...")
	lines, err := reader.ReadSalesData(cfg.InputFile)
	if err != nil {
		log.Error().Err(err).Str("file", cfg.InputFile).Msg("could not read sales data")
		lines = nil
	}
	fmt.Printf("✓ Read %d data lines\n\n", len(lines))

	// STEP 3: parse.
	fmt.Println("[2/10] Parsing and cleaning data...")
	transactions := parser.ParseTransactions(lines)
	if dropped := len(lines) - len(transactions); dropped > 0 {
		log.Debug().Int("dropped", dropped).Msg("skipped malformed rows")
	}
	fmt.Printf("✓ Parsed %d records\n\n", len(transactions))

	// STEP 4: gather filters.
	fmt.Println("[3/10] Filter options...")
	filters, err := gatherFilters(transactions)
	if err != nil {
		return err
	}

	// STEP 5: validate and filter.
	fmt.Println("[4/10] Validating transactions...")
	valid, invalidCount, summary := validation.ValidateAndFilter(transactions, filters)
	fmt.Printf("✓ Valid: %d | Invalid: %d\n\n", len(valid), invalidCount)
	log.Debug().Msg(spew.Sdump(summary))

	// STEP 6: fetch the product catalog. Failures degrade to an empty
	// catalog; the run continues with zero enrichment matches.
	fmt.Println("[5/10] Fetching product data from API...")
	var entries []types.CatalogEntry
	if cfg.Catalog.Enabled {
		client := catalog.NewClient(cfg.Catalog)
		entries, err = client.FetchAll(context.Background())
		if err != nil {
			log.Warn().Err(err).Msg("catalog fetch failed, continuing without enrichment data")
			entries = nil
		}
	} else {
		log.Info().Msg("catalog fetch disabled by configuration")
	}
	fmt.Printf("✓ Fetched %d products\n\n", len(entries))

	// STEP 7: enrich and persist the snapshot.
	fmt.Println("[6/10] Enriching sales data...")
	index := catalog.BuildIndex(entries)
	enriched := enrich.Enrich(valid, index)
	matched := enrich.MatchCount(enriched)
	successRate := 0.0
	if len(enriched) > 0 {
		successRate = float64(matched) / float64(len(enriched)) * 100
	}
	fmt.Printf("✓ Enriched %d/%d transactions (%.1f%%)\n\n", matched, len(enriched), successRate)

	fmt.Println("[7/10] Saving enriched data...")
	if dryRun {
		fmt.Println("✓ Skipped (dry run)")
		fmt.Println()
	} else {
		if err := enrich.WriteSnapshot(cfg.SnapshotFile, enriched); err != nil {
			return fmt.Errorf("failed to save enriched data: %w", err)
		}
		fmt.Printf("✓ Saved to: %s\n\n", cfg.SnapshotFile)
	}

	// STEP 8: write the text report.
	fmt.Println("[8/10] Generating report...")
	opts := report.Options{
		CurrencySymbol:       cfg.Report.CurrencySymbol,
		TopProducts:          cfg.Report.TopProducts,
		TopCustomers:         cfg.Report.TopCustomers,
		LowQuantityThreshold: cfg.Report.LowQuantityThreshold,
		Now:                  time.Now,
	}
	reportPath := filepath.Join(cfg.OutputDir, utils.ExpandNamePattern(cfg.Report.FileName))
	if dryRun {
		fmt.Println("✓ Skipped (dry run)")
		fmt.Println()
	} else {
		if err := report.Write(reportPath, valid, enriched, opts); err != nil {
			return err
		}
		fmt.Printf("✓ Report saved to: %s\n\n", reportPath)
	}

	// STEP 9: optional workbook export.
	fmt.Println("[9/10] Exporting workbook...")
	if cfg.Report.ExcelWorkbook && !dryRun {
		workbookPath := strings.TrimSuffix(reportPath, filepath.Ext(reportPath)) + ".xlsx"
		if err := report.WriteWorkbook(workbookPath, valid, enriched, opts); err != nil {
			return err
		}
		fmt.Printf("✓ Workbook saved to: %s\n\n", workbookPath)
	} else {
		fmt.Println("✓ Skipped")
		fmt.Println()
	}

	// STEP 10: archive the processed input file.
	fmt.Println("[10/10] Finishing up...")
	if cfg.ArchiveOnSuccess && !dryRun && utils.FileExists(cfg.InputFile) {
		archived, err := utils.ArchiveFile(cfg.InputFile, cfg.ArchiveDir)
		if err != nil {
			log.Warn().Err(err).Msg("could not archive input file")
		} else {
			fmt.Printf("✓ Input archived to: %s\n", archived)
		}
	}
	fmt.Printf("✓ Process complete in %s\n", time.Since(startTime).Round(time.Millisecond))
	fmt.Println("========================================")

	return nil
}

// =============================================================================
// FILTER GATHERING
// =============================================================================

// gatherFilters builds the filter options from flags, or interactively
// when no filter flags were given and prompting is allowed.
func gatherFilters(transactions []types.Transaction) (types.FilterOptions, error) {
	// Filter flags take precedence and suppress the prompt. They are
	// pre-validated here: the validator itself never sees raw input.
	if filterRegion != "" || filterMin != "" || filterMax != "" {
		opts := types.FilterOptions{Region: filterRegion}

		if filterMin != "" {
			min, err := strconv.ParseFloat(filterMin, 64)
			if err != nil {
				return types.FilterOptions{}, fmt.Errorf("invalid --min-amount %q: %w", filterMin, err)
			}
			opts.MinAmount = &min
		}
		if filterMax != "" {
			max, err := strconv.ParseFloat(filterMax, 64)
			if err != nil {
				return types.FilterOptions{}, fmt.Errorf("invalid --max-amount %q: %w", filterMax, err)
			}
			opts.MaxAmount = &max
		}

		fmt.Println("✓ Using filters from command line")
		fmt.Println()
		return opts, nil
	}

	if noPrompt {
		fmt.Println("✓ No filters applied")
		fmt.Println()
		return types.FilterOptions{}, nil
	}

	return promptFilters(transactions), nil
}

// promptFilters shows the available regions and amount range, then asks
// the user for optional filters. Non-numeric amount bounds are warned
// about and skipped; the prompt never fails the run.
func promptFilters(transactions []types.Transaction) types.FilterOptions {
	regions := validation.AvailableRegions(transactions)
	fmt.Printf("Regions: %s\n", strings.Join(regions, ", "))
	if min, max, ok := validation.AmountRange(transactions); ok {
		fmt.Printf("Amount Range: %.0f - %.0f\n", min, max)
	}
	fmt.Println()

	in := bufio.NewReader(os.Stdin)

	if !askYesNo(in, "Do you want to filter data? (y/n): ") {
		fmt.Println()
		return types.FilterOptions{}
	}

	opts := types.FilterOptions{}
	opts.Region = askLine(in, "Enter region to filter (or press Enter to skip): ")

	if raw := askLine(in, "Enter minimum amount (or press Enter to skip): "); raw != "" {
		if min, err := strconv.ParseFloat(raw, 64); err == nil {
			opts.MinAmount = &min
		} else {
			fmt.Printf("Ignoring invalid minimum amount %q\n", raw)
		}
	}

	if raw := askLine(in, "Enter maximum amount (or press Enter to skip): "); raw != "" {
		if max, err := strconv.ParseFloat(raw, 64); err == nil {
			opts.MaxAmount = &max
		} else {
			fmt.Printf("Ignoring invalid maximum amount %q\n", raw)
		}
	}

	fmt.Println()
	return opts
}

// askLine prints a prompt and returns the trimmed response.
func askLine(in *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, err := in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// askYesNo prints a prompt and reports whether the user answered yes.
func askYesNo(in *bufio.Reader, prompt string) bool {
	answer := strings.ToLower(askLine(in, prompt))
	return answer == "y" || answer == "yes"
}
