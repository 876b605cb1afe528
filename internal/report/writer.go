// =============================================================================
// Sales Analytics - Report Writer
// =============================================================================
//
// This module renders the aggregation results into the fixed-format text
// report. Section order is part of the contract:
//
//   1. Header (generation timestamp, record count)
//   2. Overall summary
//   3. Region-wise performance
//   4. Top products
//   5. Top customers
//   6. Daily sales trend
//   7. Product performance analysis
//   8. API enrichment summary
//
// Monetary values carry the configured currency symbol and thousands
// separators; percentages render with two decimal places. The report is
// built fully in memory and written in one shot.
//
// =============================================================================

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rgupta-dev/sales-analytics/internal/analytics"
	"github.com/rgupta-dev/sales-analytics/internal/types"
)

const divider = "--------------------------------------------"

// Options controls report rendering.
type Options struct {
	// CurrencySymbol prefixes every monetary value.
	CurrencySymbol string

	// TopProducts is the N for the top products table.
	TopProducts int

	// TopCustomers is the N for the top customers table.
	TopCustomers int

	// LowQuantityThreshold marks products as low performing below it.
	LowQuantityThreshold int

	// Now supplies the generation timestamp. Injectable for tests.
	Now func() time.Time
}

// DefaultOptions returns the standard report options.
func DefaultOptions() Options {
	return Options{
		CurrencySymbol:       "₹",
		TopProducts:          analytics.DefaultTopN,
		TopCustomers:         analytics.DefaultTopN,
		LowQuantityThreshold: analytics.DefaultLowQuantityThreshold,
		Now:                  time.Now,
	}
}

// writer accumulates report text and owns the number formatting.
type writer struct {
	builder strings.Builder
	printer *message.Printer
	symbol  string
}

// Generate renders the full report as a string.
func Generate(transactions []types.Transaction, enriched []types.EnrichedTransaction, opts Options) string {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	w := &writer{
		printer: message.NewPrinter(language.English),
		symbol:  opts.CurrencySymbol,
	}

	w.header(transactions, opts.Now())
	w.overallSummary(transactions)
	w.regionPerformance(transactions)
	w.topProducts(transactions, opts.TopProducts)
	w.topCustomers(transactions, opts.TopCustomers)
	w.dailyTrend(transactions)
	w.productPerformance(transactions, opts.LowQuantityThreshold)
	w.enrichmentSummary(enriched)

	return w.builder.String()
}

// Write renders the report and writes it to path as UTF-8 text.
func Write(path string, transactions []types.Transaction, enriched []types.EnrichedTransaction, opts Options) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	content := Generate(transactions, enriched, opts)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// =============================================================================
// SECTIONS
// =============================================================================

func (w *writer) header(transactions []types.Transaction, now time.Time) {
	w.line("============================================")
	w.line("           SALES ANALYTICS REPORT")
	w.linef("         Generated: %s", now.Format("2006-01-02 15:04:05"))
	w.linef("         Records Processed: %d", len(transactions))
	w.line("============================================")
	w.line("")
}

func (w *writer) overallSummary(transactions []types.Transaction) {
	totalRevenue := analytics.TotalRevenue(transactions)

	avgOrderValue := 0.0
	if len(transactions) > 0 {
		avgOrderValue = totalRevenue / float64(len(transactions))
	}

	dateRange := "N/A"
	if len(transactions) > 0 {
		minDate, maxDate := transactions[0].Date, transactions[0].Date
		for _, tx := range transactions[1:] {
			if tx.Date < minDate {
				minDate = tx.Date
			}
			if tx.Date > maxDate {
				maxDate = tx.Date
			}
		}
		dateRange = minDate + " to " + maxDate
	}

	w.section("OVERALL SUMMARY")
	w.linef("Total Revenue:        %s", w.money2(totalRevenue))
	w.linef("Total Transactions:   %d", len(transactions))
	w.linef("Average Order Value:  %s", w.money2(avgOrderValue))
	w.linef("Date Range:           %s", dateRange)
	w.line("")
}

func (w *writer) regionPerformance(transactions []types.Transaction) {
	regions := analytics.RegionWiseSales(transactions)

	w.section("REGION-WISE PERFORMANCE")
	w.linef("%-10s %-15s %-11s %s", "Region", "Sales", "% of Total", "Transactions")
	for _, region := range regions {
		w.linef("%-10s %-15s %6.2f%%     %d",
			region.Region,
			w.money0(region.TotalSales),
			region.Percentage,
			region.TransactionCount,
		)
	}
	w.line("")
}

func (w *writer) topProducts(transactions []types.Transaction, n int) {
	products := analytics.TopSellingProducts(transactions, n)

	w.section(fmt.Sprintf("TOP %d PRODUCTS", n))
	w.linef("%-5s %-25s %-10s %s", "Rank", "Product Name", "Quantity", "Revenue")
	for i, product := range products {
		w.linef("%-5d %-25s %-10d %s", i+1, product.Name, product.Quantity, w.money0(product.Revenue))
	}
	w.line("")
}

func (w *writer) topCustomers(transactions []types.Transaction, n int) {
	customers := analytics.CustomerAnalysis(transactions)
	if len(customers) > n {
		customers = customers[:n]
	}

	w.section(fmt.Sprintf("TOP %d CUSTOMERS", n))
	w.linef("%-5s %-13s %-14s %s", "Rank", "Customer ID", "Total Spent", "Orders")
	for i, customer := range customers {
		w.linef("%-5d %-13s %-14s %d", i+1, customer.CustomerID, w.money0(customer.TotalSpent), customer.PurchaseCount)
	}
	w.line("")
}

func (w *writer) dailyTrend(transactions []types.Transaction) {
	trend := analytics.DailySalesTrend(transactions)

	w.section("DAILY SALES TREND")
	w.linef("%-12s %-13s %-14s %s", "Date", "Revenue", "Transactions", "Unique Customers")
	for _, day := range trend {
		w.linef("%-12s %-13s %-14d %d", day.Date, w.money0(day.Revenue), day.TransactionCount, day.UniqueCustomers)
	}
	w.line("")
}

func (w *writer) productPerformance(transactions []types.Transaction, threshold int) {
	w.section("PRODUCT PERFORMANCE ANALYSIS")

	if peak, ok := analytics.PeakSalesDay(transactions); ok {
		w.linef("Best Selling Day: %s (%s)", peak.Date, w.money0(peak.Revenue))
	} else {
		w.line("Best Selling Day: N/A")
	}

	low := analytics.LowPerformingProducts(transactions, threshold)
	if len(low) == 0 {
		w.line("Low Performing Products: None")
	} else {
		names := make([]string, len(low))
		for i, product := range low {
			names[i] = product.Name
		}
		w.linef("Low Performing Products: %s", strings.Join(names, ", "))
	}

	w.line("Average Transaction Value per Region:")
	for _, region := range analytics.RegionWiseSales(transactions) {
		avg := 0.0
		if region.TransactionCount > 0 {
			avg = region.TotalSales / float64(region.TransactionCount)
		}
		w.linef("  %s: %s", region.Region, w.money2(avg))
	}
	w.line("")
}

func (w *writer) enrichmentSummary(enriched []types.EnrichedTransaction) {
	matched := 0
	var unmatched []string
	seen := make(map[string]bool)

	for _, record := range enriched {
		if record.APIMatch {
			matched++
			continue
		}
		if !seen[record.ProductName] {
			seen[record.ProductName] = true
			unmatched = append(unmatched, record.ProductName)
		}
	}

	successRate := 0.0
	if len(enriched) > 0 {
		successRate = float64(matched) / float64(len(enriched)) * 100
	}

	w.section("API ENRICHMENT SUMMARY")
	w.linef("Total Products Enriched: %d", matched)
	w.linef("Success Rate: %.2f%%", successRate)
	if len(unmatched) == 0 {
		w.line("Unmatched Products: None")
	} else {
		w.linef("Unmatched Products: %s", strings.Join(unmatched, ", "))
	}
	w.line("")
}

// =============================================================================
// RENDERING HELPERS
// =============================================================================

func (w *writer) section(title string) {
	w.line(title)
	w.line(divider)
}

func (w *writer) line(s string) {
	w.builder.WriteString(s)
	w.builder.WriteString("\n")
}

func (w *writer) linef(format string, args ...interface{}) {
	w.line(fmt.Sprintf(format, args...))
}

// money2 renders a monetary value with the currency symbol, thousands
// separators, and two decimal places.
func (w *writer) money2(v float64) string {
	return w.symbol + w.printer.Sprintf("%.2f", v)
}

// money0 renders a monetary value with the currency symbol and thousands
// separators, rounded to whole units (table cells).
func (w *writer) money0(v float64) string {
	return w.symbol + w.printer.Sprintf("%.0f", v)
}
