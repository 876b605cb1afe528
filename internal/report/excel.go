// =============================================================================
// Sales Analytics - XLSX Workbook Export
// =============================================================================
//
// Optional companion to the text report: the same aggregation results as
// an XLSX workbook, one sheet per section, for people who want to pivot
// the numbers instead of reading them. Values are written raw (no
// currency symbols) so spreadsheet formulas work on them.
//
// =============================================================================

package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/rgupta-dev/sales-analytics/internal/analytics"
	"github.com/rgupta-dev/sales-analytics/internal/types"
)

// WriteWorkbook writes the aggregation results as an XLSX workbook.
func WriteWorkbook(path string, transactions []types.Transaction, enriched []types.EnrichedTransaction, opts Options) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create workbook directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, transactions, enriched); err != nil {
		return err
	}
	if err := writeRegionSheet(f, transactions); err != nil {
		return err
	}
	if err := writeProductSheet(f, transactions, opts.TopProducts); err != nil {
		return err
	}
	if err := writeCustomerSheet(f, transactions); err != nil {
		return err
	}
	if err := writeDailySheet(f, transactions); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func writeSummarySheet(f *excelize.File, transactions []types.Transaction, enriched []types.EnrichedTransaction) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	totalRevenue := analytics.TotalRevenue(transactions)
	avgOrderValue := 0.0
	if len(transactions) > 0 {
		avgOrderValue = totalRevenue / float64(len(transactions))
	}

	matched := 0
	for _, record := range enriched {
		if record.APIMatch {
			matched++
		}
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Revenue", totalRevenue},
		{"Total Transactions", len(transactions)},
		{"Average Order Value", avgOrderValue},
		{"Enriched Transactions", matched},
	}

	return writeRows(f, sheet, rows)
}

func writeRegionSheet(f *excelize.File, transactions []types.Transaction) error {
	const sheet = "Regions"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Region", "Total Sales", "% of Total", "Transactions"},
	}
	for _, region := range analytics.RegionWiseSales(transactions) {
		rows = append(rows, []interface{}{region.Region, region.TotalSales, region.Percentage, region.TransactionCount})
	}

	return writeRows(f, sheet, rows)
}

func writeProductSheet(f *excelize.File, transactions []types.Transaction, topN int) error {
	const sheet = "Top Products"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Rank", "Product Name", "Quantity", "Revenue"},
	}
	for i, product := range analytics.TopSellingProducts(transactions, topN) {
		rows = append(rows, []interface{}{i + 1, product.Name, product.Quantity, product.Revenue})
	}

	return writeRows(f, sheet, rows)
}

func writeCustomerSheet(f *excelize.File, transactions []types.Transaction) error {
	const sheet = "Customers"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Customer ID", "Total Spent", "Orders", "Avg Order Value"},
	}
	for _, customer := range analytics.CustomerAnalysis(transactions) {
		rows = append(rows, []interface{}{customer.CustomerID, customer.TotalSpent, customer.PurchaseCount, customer.AvgOrderValue})
	}

	return writeRows(f, sheet, rows)
}

func writeDailySheet(f *excelize.File, transactions []types.Transaction) error {
	const sheet = "Daily Trend"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Date", "Revenue", "Transactions", "Unique Customers"},
	}
	for _, day := range analytics.DailySalesTrend(transactions) {
		rows = append(rows, []interface{}{day.Date, day.Revenue, day.TransactionCount, day.UniqueCustomers})
	}

	return writeRows(f, sheet, rows)
}

// writeRows writes rows starting at A1, one slice per spreadsheet row.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on sheet %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
