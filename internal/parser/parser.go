// =============================================================================
// Sales Analytics - Transaction Parser
// =============================================================================
//
// This module converts raw pipe-delimited lines into structured
// transactions. The input format is fixed:
//
//   TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
//
// Rows that do not have exactly eight fields, or whose numeric fields do
// not parse after comma stripping, are silently skipped. Malformed rows
// are never surfaced individually; they only show up as a difference
// between line count and parsed count.
//
// =============================================================================

package parser

import (
	"strconv"
	"strings"

	"github.com/rgupta-dev/sales-analytics/internal/types"
)

// fieldCount is the exact number of pipe-separated fields per data row.
const fieldCount = 8

// ParseTransactions parses raw lines into transactions, discarding
// malformed rows.
func ParseTransactions(lines []string) []types.Transaction {
	transactions := make([]types.Transaction, 0, len(lines))

	for _, line := range lines {
		tx, ok := parseLine(line)
		if !ok {
			continue
		}
		transactions = append(transactions, tx)
	}

	return transactions
}

// parseLine parses a single pipe-delimited row.
//
// RETURNS:
//   - The parsed transaction and true on success.
//   - A zero transaction and false for any malformed row.
func parseLine(line string) (types.Transaction, bool) {
	parts := strings.Split(line, "|")
	if len(parts) != fieldCount {
		return types.Transaction{}, false
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	// Commas appear inside product names and as thousands separators in
	// the numeric columns. Both collide with downstream delimited output,
	// so they are stripped here.
	productName := strings.ReplaceAll(parts[3], ",", "")

	quantity, err := strconv.Atoi(strings.ReplaceAll(parts[4], ",", ""))
	if err != nil {
		return types.Transaction{}, false
	}

	unitPrice, err := strconv.ParseFloat(strings.ReplaceAll(parts[5], ",", ""), 64)
	if err != nil {
		return types.Transaction{}, false
	}

	return types.Transaction{
		TransactionID: parts[0],
		Date:          parts[1],
		ProductID:     parts[2],
		ProductName:   productName,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    parts[6],
		Region:        parts[7],
	}, true
}
