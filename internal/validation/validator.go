// =============================================================================
// Sales Analytics - Validator / Filter
// =============================================================================
//
// This module removes semantically invalid transactions and applies the
// optional user-specified filters.
//
// VALIDATION RULES (a record failing any is dropped, counted, never repaired):
//   - Quantity must be strictly positive
//   - UnitPrice must be strictly positive
//   - TransactionID must carry the "T" prefix
//   - ProductID must carry the "P" prefix
//   - CustomerID must carry the "C" prefix
//
// FILTER ORDER (fixed; each step only removes records):
//   1. Region equality
//   2. Minimum amount
//   3. Maximum amount
//
// Malformed filter inputs (e.g. a non-numeric amount bound) are the
// caller's responsibility to pre-validate; this stage never returns an
// error.
//
// =============================================================================

package validation

import (
	"sort"
	"strings"

	"github.com/rgupta-dev/sales-analytics/internal/types"
)

// ValidateAndFilter validates transactions and applies the optional
// filters in fixed order.
//
// RETURNS:
//   - The surviving transactions.
//   - The count of records dropped by validation rules.
//   - A summary of every removal step.
func ValidateAndFilter(transactions []types.Transaction, opts types.FilterOptions) ([]types.Transaction, int, types.FilterSummary) {
	summary := types.FilterSummary{
		TotalInput: len(transactions),
	}

	valid := make([]types.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !isValid(tx) {
			summary.Invalid++
			continue
		}
		valid = append(valid, tx)
	}

	if opts.Region != "" {
		before := len(valid)
		valid = filter(valid, func(tx types.Transaction) bool {
			return tx.Region == opts.Region
		})
		summary.FilteredByRegion = before - len(valid)
	}

	if opts.MinAmount != nil {
		before := len(valid)
		valid = filter(valid, func(tx types.Transaction) bool {
			return tx.Amount() >= *opts.MinAmount
		})
		summary.FilteredByAmount += before - len(valid)
	}

	if opts.MaxAmount != nil {
		before := len(valid)
		valid = filter(valid, func(tx types.Transaction) bool {
			return tx.Amount() <= *opts.MaxAmount
		})
		summary.FilteredByAmount += before - len(valid)
	}

	summary.FinalCount = len(valid)

	return valid, summary.Invalid, summary
}

// isValid applies the record-level validation rules.
func isValid(tx types.Transaction) bool {
	if tx.Quantity <= 0 || tx.UnitPrice <= 0 {
		return false
	}
	if !strings.HasPrefix(tx.TransactionID, types.TransactionPrefix) {
		return false
	}
	if !strings.HasPrefix(tx.ProductID, types.ProductPrefix) {
		return false
	}
	if !strings.HasPrefix(tx.CustomerID, types.CustomerPrefix) {
		return false
	}
	return true
}

// filter returns the transactions for which keep returns true.
func filter(transactions []types.Transaction, keep func(types.Transaction) bool) []types.Transaction {
	out := make([]types.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// =============================================================================
// PROMPT HELPERS
// =============================================================================
// Used by the interactive filter prompt to show the user what values make
// sense before asking for filter input.

// AvailableRegions returns the sorted distinct non-empty regions.
func AvailableRegions(transactions []types.Transaction) []string {
	seen := make(map[string]bool)
	var regions []string

	for _, tx := range transactions {
		region := strings.TrimSpace(tx.Region)
		if region == "" || seen[region] {
			continue
		}
		seen[region] = true
		regions = append(regions, region)
	}

	sort.Strings(regions)
	return regions
}

// AmountRange returns the minimum and maximum transaction amounts. The
// third return value is false when there are no transactions.
func AmountRange(transactions []types.Transaction) (min, max float64, ok bool) {
	if len(transactions) == 0 {
		return 0, 0, false
	}

	min = transactions[0].Amount()
	max = min
	for _, tx := range transactions[1:] {
		amount := tx.Amount()
		if amount < min {
			min = amount
		}
		if amount > max {
			max = amount
		}
	}

	return min, max, true
}
