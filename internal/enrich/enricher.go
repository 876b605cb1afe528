// =============================================================================
// Sales Analytics - Catalog Enricher
// =============================================================================
//
// This module attaches catalog metadata to validated transactions and
// persists the enriched snapshot.
//
// MATCHING:
//   The numeric id embedded in a ProductID (e.g. "P101" -> 101) is looked
//   up in the catalog index. A hit copies category/brand/rating onto the
//   record and sets APIMatch; any failure to match degrades that one
//   record to the no-match outcome. A single bad record never aborts the
//   batch.
//
// Enrichment is additive and idempotent: original transaction fields are
// never touched, and re-running against the same index yields identical
// enrichment fields.
//
// =============================================================================

package enrich

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rgupta-dev/sales-analytics/internal/types"
)

// digitRun matches the first contiguous run of digits in a product id.
var digitRun = regexp.MustCompile(`\d+`)

// Enrich attaches catalog metadata to each transaction. The result always
// has the same length and order as the input.
func Enrich(transactions []types.Transaction, index types.CatalogIndex) []types.EnrichedTransaction {
	enriched := make([]types.EnrichedTransaction, 0, len(transactions))

	for _, tx := range transactions {
		record := types.EnrichedTransaction{Transaction: tx}

		if info, ok := matchProduct(tx.ProductID, index); ok {
			category := info.Category
			brand := info.Brand
			record.APICategory = &category
			record.APIBrand = &brand
			record.APIRating = info.Rating
			record.APIMatch = true
		}

		enriched = append(enriched, record)
	}

	return enriched
}

// matchProduct extracts the numeric id from a product id and resolves it
// against the index. Every failure mode returns ok=false; this is the
// per-record isolation the enricher guarantees.
func matchProduct(productID string, index types.CatalogIndex) (types.ProductInfo, bool) {
	digits := digitRun.FindString(productID)
	if digits == "" {
		return types.ProductInfo{}, false
	}

	id, err := strconv.Atoi(digits)
	if err != nil {
		// A run of digits too long for an int. Treat as no match.
		return types.ProductInfo{}, false
	}

	info, ok := index[id]
	return info, ok
}

// MatchCount returns how many records were enriched with a catalog hit.
func MatchCount(enriched []types.EnrichedTransaction) int {
	count := 0
	for _, record := range enriched {
		if record.APIMatch {
			count++
		}
	}
	return count
}

// =============================================================================
// SNAPSHOT WRITER
// =============================================================================

// snapshotHeader is the fixed column header of the enriched snapshot file.
var snapshotHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region",
	"API_Category", "API_Brand", "API_Rating", "API_Match",
}

// WriteSnapshot persists the enriched transactions as pipe-delimited text.
// Nil enrichment fields render as empty strings and APIMatch as a boolean
// literal.
func WriteSnapshot(path string, enriched []types.EnrichedTransaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	var builder strings.Builder
	builder.WriteString(strings.Join(snapshotHeader, "|"))
	builder.WriteString("\n")

	for _, record := range enriched {
		row := []string{
			record.TransactionID,
			record.Date,
			record.ProductID,
			record.ProductName,
			strconv.Itoa(record.Quantity),
			strconv.FormatFloat(record.UnitPrice, 'f', -1, 64),
			record.CustomerID,
			record.Region,
			stringOrEmpty(record.APICategory),
			stringOrEmpty(record.APIBrand),
			floatOrEmpty(record.APIRating),
			strconv.FormatBool(record.APIMatch),
		}
		builder.WriteString(strings.Join(row, "|"))
		builder.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(builder.String()), 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
