// =============================================================================
// Sales Analytics - Aggregation Engine
// =============================================================================
//
// This module is the analytical core of the pipeline. Every function here
// is pure: it takes a slice of validated transactions and returns a data
// structure, with no side effects and no dependency on any other
// aggregation.
//
// CONTRACT:
//   - Input is assumed validated (positive quantity/price, prefixed IDs).
//   - Monetary aggregation always uses the derived amount
//     (quantity x unit price); nothing is rounded during accumulation,
//     only at presentation.
//   - Empty input never panics: empty groupings and zero-division guards
//     are part of the contract, not an optimization.
//   - Ranking ties resolve to first-seen input order (stable sorts over
//     insertion-ordered groups), so results are deterministic for a
//     deterministic input ordering.
//
// =============================================================================

package analytics

import (
	"math"
	"sort"

	"github.com/rgupta-dev/sales-analytics/internal/types"
)

// DefaultTopN is the number of entries returned by top-product and
// top-customer rankings unless the caller asks for a different cut.
const DefaultTopN = 5

// DefaultLowQuantityThreshold marks products as low-performing when their
// total quantity sold is strictly below it.
const DefaultLowQuantityThreshold = 10

// =============================================================================
// RESULT TYPES
// =============================================================================

// RegionStat summarizes sales for one region.
type RegionStat struct {
	Region           string
	TotalSales       float64
	TransactionCount int

	// Percentage is this region's share of total revenue, rounded to two
	// decimal places. Zero when total revenue is zero.
	Percentage float64
}

// ProductStat summarizes sales for one product.
type ProductStat struct {
	Name     string
	Quantity int
	Revenue  float64
}

// CustomerStat summarizes purchases for one customer.
type CustomerStat struct {
	CustomerID    string
	TotalSpent    float64
	PurchaseCount int
	AvgOrderValue float64

	// ProductsBought is the deduplicated set of product names, sorted for
	// presentation. Aggregation itself is order-independent.
	ProductsBought []string
}

// DailyStat summarizes sales for one date.
type DailyStat struct {
	Date             string
	Revenue          float64
	TransactionCount int
	UniqueCustomers  int
}

// =============================================================================
// AGGREGATIONS
// =============================================================================

// TotalRevenue sums the derived amount over all transactions. Zero for
// empty input.
func TotalRevenue(transactions []types.Transaction) float64 {
	total := 0.0
	for _, tx := range transactions {
		total += tx.Amount()
	}
	return total
}

// RegionWiseSales groups transactions by region and computes per-region
// totals, counts, and share of overall revenue.
//
// RETURNS:
//   - Regions ordered by descending total sales; ties keep first-seen
//     order.
func RegionWiseSales(transactions []types.Transaction) []RegionStat {
	totalRevenue := TotalRevenue(transactions)

	index := make(map[string]int)
	stats := make([]RegionStat, 0)

	for _, tx := range transactions {
		i, ok := index[tx.Region]
		if !ok {
			i = len(stats)
			index[tx.Region] = i
			stats = append(stats, RegionStat{Region: tx.Region})
		}
		stats[i].TotalSales += tx.Amount()
		stats[i].TransactionCount++
	}

	for i := range stats {
		if totalRevenue > 0 {
			stats[i].Percentage = round2(stats[i].TotalSales / totalRevenue * 100)
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales > stats[j].TotalSales
	})

	return stats
}

// TopSellingProducts returns the n products with the highest total
// quantity sold (not revenue). A non-positive n falls back to DefaultTopN.
func TopSellingProducts(transactions []types.Transaction, n int) []ProductStat {
	if n <= 0 {
		n = DefaultTopN
	}

	stats := productStats(transactions)

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Quantity > stats[j].Quantity
	})

	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// CustomerAnalysis groups transactions by customer and computes spend,
// purchase count, distinct products bought, and average order value.
//
// RETURNS:
//   - Customers ordered by descending total spent; ties keep first-seen
//     order.
func CustomerAnalysis(transactions []types.Transaction) []CustomerStat {
	index := make(map[string]int)
	stats := make([]CustomerStat, 0)
	products := make([]map[string]struct{}, 0)

	for _, tx := range transactions {
		i, ok := index[tx.CustomerID]
		if !ok {
			i = len(stats)
			index[tx.CustomerID] = i
			stats = append(stats, CustomerStat{CustomerID: tx.CustomerID})
			products = append(products, make(map[string]struct{}))
		}
		stats[i].TotalSpent += tx.Amount()
		stats[i].PurchaseCount++
		products[i][tx.ProductName] = struct{}{}
	}

	for i := range stats {
		// PurchaseCount >= 1 for any present key, so the division is safe.
		stats[i].AvgOrderValue = round2(stats[i].TotalSpent / float64(stats[i].PurchaseCount))
		stats[i].ProductsBought = sortedKeys(products[i])
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent > stats[j].TotalSpent
	})

	return stats
}

// DailySalesTrend groups transactions by date string and computes revenue,
// transaction count, and distinct customer count per day.
//
// RETURNS:
//   - Days in ascending lexicographic date order, which is chronological
//     for the ISO YYYY-MM-DD layout.
func DailySalesTrend(transactions []types.Transaction) []DailyStat {
	index := make(map[string]int)
	stats := make([]DailyStat, 0)
	customers := make([]map[string]struct{}, 0)

	for _, tx := range transactions {
		i, ok := index[tx.Date]
		if !ok {
			i = len(stats)
			index[tx.Date] = i
			stats = append(stats, DailyStat{Date: tx.Date})
			customers = append(customers, make(map[string]struct{}))
		}
		stats[i].Revenue += tx.Amount()
		stats[i].TransactionCount++
		customers[i][tx.CustomerID] = struct{}{}
	}

	for i := range stats {
		stats[i].UniqueCustomers = len(customers[i])
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Date < stats[j].Date
	})

	return stats
}

// PeakSalesDay returns the day with the highest revenue. The second return
// value is false when there are no transactions. Revenue ties resolve to
// the earliest date.
func PeakSalesDay(transactions []types.Transaction) (DailyStat, bool) {
	trend := DailySalesTrend(transactions)
	if len(trend) == 0 {
		return DailyStat{}, false
	}

	peak := trend[0]
	for _, day := range trend[1:] {
		if day.Revenue > peak.Revenue {
			peak = day
		}
	}

	return peak, true
}

// LowPerformingProducts returns products whose total quantity sold is
// strictly below threshold, ordered by ascending quantity. A non-positive
// threshold falls back to DefaultLowQuantityThreshold.
//
// A product that sold nothing at all never appears: it generates no
// transaction rows, so "low performing" means "appeared but below
// threshold".
func LowPerformingProducts(transactions []types.Transaction, threshold int) []ProductStat {
	if threshold <= 0 {
		threshold = DefaultLowQuantityThreshold
	}

	stats := productStats(transactions)

	low := stats[:0]
	for _, stat := range stats {
		if stat.Quantity < threshold {
			low = append(low, stat)
		}
	}

	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})

	return low
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

// productStats accumulates quantity and revenue per product name in
// first-seen order.
func productStats(transactions []types.Transaction) []ProductStat {
	index := make(map[string]int)
	stats := make([]ProductStat, 0)

	for _, tx := range transactions {
		i, ok := index[tx.ProductName]
		if !ok {
			i = len(stats)
			index[tx.ProductName] = i
			stats = append(stats, ProductStat{Name: tx.ProductName})
		}
		stats[i].Quantity += tx.Quantity
		stats[i].Revenue += tx.Amount()
	}

	return stats
}

// sortedKeys returns the keys of a string set in sorted order.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
