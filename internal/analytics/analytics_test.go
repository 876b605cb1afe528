package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgupta-dev/sales-analytics/internal/types"
)

func tx(id, date, productID, product string, qty int, price float64, customer, region string) types.Transaction {
	return types.Transaction{
		TransactionID: id,
		Date:          date,
		ProductID:     productID,
		ProductName:   product,
		Quantity:      qty,
		UnitPrice:     price,
		CustomerID:    customer,
		Region:        region,
	}
}

func sampleTransactions() []types.Transaction {
	return []types.Transaction{
		tx("T1", "2024-01-01", "P101", "Mouse", 2, 500, "C1", "North"),
		tx("T2", "2024-01-01", "P999", "KB", 1, 100, "C2", "South"),
		tx("T3", "2024-01-02", "P101", "Mouse", 3, 500, "C1", "North"),
		tx("T4", "2024-01-02", "P300", "Laptop", 1, 45000, "C3", "East"),
		tx("T5", "2024-01-03", "P999", "KB", 12, 100, "C2", "South"),
	}
}

func TestTotalRevenue(t *testing.T) {
	assert.InDelta(t, 48800.0, TotalRevenue(sampleTransactions()), 1e-9)
}

func TestTotalRevenue_Empty(t *testing.T) {
	assert.Zero(t, TotalRevenue(nil))
}

func TestRegionWiseSales_WorkedExample(t *testing.T) {
	transactions := []types.Transaction{
		tx("T1", "2024-01-01", "P101", "Mouse", 2, 500, "C1", "North"),
		tx("T2", "2024-01-01", "P999", "KB", 1, 100, "C2", "South"),
	}

	require.InDelta(t, 1100.0, TotalRevenue(transactions), 1e-9)

	regions := RegionWiseSales(transactions)
	require.Len(t, regions, 2)

	assert.Equal(t, "North", regions[0].Region)
	assert.InDelta(t, 1000.0, regions[0].TotalSales, 1e-9)
	assert.Equal(t, 1, regions[0].TransactionCount)
	assert.InDelta(t, 90.91, regions[0].Percentage, 1e-9)

	assert.Equal(t, "South", regions[1].Region)
	assert.InDelta(t, 100.0, regions[1].TotalSales, 1e-9)
	assert.InDelta(t, 9.09, regions[1].Percentage, 1e-9)
}

func TestRegionWiseSales_PartitionInvariant(t *testing.T) {
	transactions := sampleTransactions()
	regions := RegionWiseSales(transactions)

	sum := 0.0
	pctSum := 0.0
	for _, region := range regions {
		sum += region.TotalSales
		pctSum += region.Percentage
	}

	assert.InDelta(t, TotalRevenue(transactions), sum, 1e-9)
	assert.InDelta(t, 100.0, pctSum, 0.05)
}

func TestRegionWiseSales_OrderedByTotalDescending(t *testing.T) {
	regions := RegionWiseSales(sampleTransactions())
	require.NotEmpty(t, regions)

	for i := 1; i < len(regions); i++ {
		assert.GreaterOrEqual(t, regions[i-1].TotalSales, regions[i].TotalSales)
	}
	assert.Equal(t, "East", regions[0].Region)
}

func TestRegionWiseSales_TieKeepsFirstSeenOrder(t *testing.T) {
	transactions := []types.Transaction{
		tx("T1", "2024-01-01", "P1", "A", 1, 100, "C1", "West"),
		tx("T2", "2024-01-01", "P2", "B", 1, 100, "C2", "North"),
	}

	regions := RegionWiseSales(transactions)
	require.Len(t, regions, 2)
	assert.Equal(t, "West", regions[0].Region)
	assert.Equal(t, "North", regions[1].Region)
}

func TestRegionWiseSales_Empty(t *testing.T) {
	assert.Empty(t, RegionWiseSales(nil))
}

func TestTopSellingProducts_SortsByQuantityNotRevenue(t *testing.T) {
	products := TopSellingProducts(sampleTransactions(), 5)
	require.Len(t, products, 3)

	// KB sold 13 units for 1300; Laptop sold 1 unit for 45000. Quantity
	// wins the ranking.
	assert.Equal(t, "KB", products[0].Name)
	assert.Equal(t, 13, products[0].Quantity)
	assert.InDelta(t, 1300.0, products[0].Revenue, 1e-9)

	assert.Equal(t, "Mouse", products[1].Name)
	assert.Equal(t, 5, products[1].Quantity)

	assert.Equal(t, "Laptop", products[2].Name)
}

func TestTopSellingProducts_LimitsToN(t *testing.T) {
	products := TopSellingProducts(sampleTransactions(), 2)
	require.Len(t, products, 2)
	assert.Equal(t, "KB", products[0].Name)
	assert.Equal(t, "Mouse", products[1].Name)
}

func TestTopSellingProducts_DefaultN(t *testing.T) {
	products := TopSellingProducts(sampleTransactions(), 0)
	assert.Len(t, products, 3) // fewer distinct products than DefaultTopN
}

func TestTopSellingProducts_TieKeepsFirstSeenOrder(t *testing.T) {
	transactions := []types.Transaction{
		tx("T1", "2024-01-01", "P1", "Zebra", 2, 10, "C1", "N"),
		tx("T2", "2024-01-01", "P2", "Apple", 2, 10, "C1", "N"),
	}

	products := TopSellingProducts(transactions, 5)
	require.Len(t, products, 2)
	assert.Equal(t, "Zebra", products[0].Name)
	assert.Equal(t, "Apple", products[1].Name)
}

func TestTopSellingProducts_Empty(t *testing.T) {
	assert.Empty(t, TopSellingProducts(nil, 5))
}

func TestCustomerAnalysis(t *testing.T) {
	customers := CustomerAnalysis(sampleTransactions())
	require.Len(t, customers, 3)

	// Sorted by total spent descending.
	assert.Equal(t, "C3", customers[0].CustomerID)
	assert.InDelta(t, 45000.0, customers[0].TotalSpent, 1e-9)

	assert.Equal(t, "C1", customers[1].CustomerID)
	assert.InDelta(t, 2500.0, customers[1].TotalSpent, 1e-9)
	assert.Equal(t, 2, customers[1].PurchaseCount)
	assert.InDelta(t, 1250.0, customers[1].AvgOrderValue, 1e-9)
	assert.Equal(t, []string{"Mouse"}, customers[1].ProductsBought)

	assert.Equal(t, "C2", customers[2].CustomerID)
	assert.Equal(t, []string{"KB"}, customers[2].ProductsBought)
}

func TestCustomerAnalysis_AvgTimesCountApproximatesSpent(t *testing.T) {
	for _, customer := range CustomerAnalysis(sampleTransactions()) {
		assert.InDelta(t, customer.TotalSpent, customer.AvgOrderValue*float64(customer.PurchaseCount), 0.01*float64(customer.PurchaseCount))
	}
}

func TestCustomerAnalysis_ProductsDeduplicated(t *testing.T) {
	transactions := []types.Transaction{
		tx("T1", "2024-01-01", "P1", "Mouse", 1, 10, "C1", "N"),
		tx("T2", "2024-01-02", "P1", "Mouse", 1, 10, "C1", "N"),
		tx("T3", "2024-01-03", "P2", "Desk", 1, 10, "C1", "N"),
	}

	customers := CustomerAnalysis(transactions)
	require.Len(t, customers, 1)
	assert.Equal(t, []string{"Desk", "Mouse"}, customers[0].ProductsBought)
	assert.Equal(t, 3, customers[0].PurchaseCount)
}

func TestCustomerAnalysis_Empty(t *testing.T) {
	assert.Empty(t, CustomerAnalysis(nil))
}

func TestDailySalesTrend(t *testing.T) {
	trend := DailySalesTrend(sampleTransactions())
	require.Len(t, trend, 3)

	assert.Equal(t, "2024-01-01", trend[0].Date)
	assert.InDelta(t, 1100.0, trend[0].Revenue, 1e-9)
	assert.Equal(t, 2, trend[0].TransactionCount)
	assert.Equal(t, 2, trend[0].UniqueCustomers)

	assert.Equal(t, "2024-01-02", trend[1].Date)
	assert.Equal(t, "2024-01-03", trend[2].Date)
}

func TestDailySalesTrend_DatesNonDecreasing(t *testing.T) {
	trend := DailySalesTrend(sampleTransactions())
	for i := 1; i < len(trend); i++ {
		assert.LessOrEqual(t, trend[i-1].Date, trend[i].Date)
	}
}

func TestDailySalesTrend_UniqueCustomersDeduplicated(t *testing.T) {
	transactions := []types.Transaction{
		tx("T1", "2024-01-01", "P1", "A", 1, 10, "C1", "N"),
		tx("T2", "2024-01-01", "P2", "B", 1, 10, "C1", "N"),
		tx("T3", "2024-01-01", "P3", "C", 1, 10, "C2", "N"),
	}

	trend := DailySalesTrend(transactions)
	require.Len(t, trend, 1)
	assert.Equal(t, 3, trend[0].TransactionCount)
	assert.Equal(t, 2, trend[0].UniqueCustomers)
}

func TestPeakSalesDay(t *testing.T) {
	peak, ok := PeakSalesDay(sampleTransactions())
	require.True(t, ok)
	assert.Equal(t, "2024-01-02", peak.Date)
	assert.InDelta(t, 45500.0, peak.Revenue, 1e-9)
}

func TestPeakSalesDay_TieResolvesToEarliestDate(t *testing.T) {
	transactions := []types.Transaction{
		tx("T1", "2024-01-05", "P1", "A", 1, 100, "C1", "N"),
		tx("T2", "2024-01-02", "P2", "B", 1, 100, "C2", "N"),
	}

	peak, ok := PeakSalesDay(transactions)
	require.True(t, ok)
	assert.Equal(t, "2024-01-02", peak.Date)
}

func TestPeakSalesDay_Empty(t *testing.T) {
	_, ok := PeakSalesDay(nil)
	assert.False(t, ok)
}

func TestLowPerformingProducts(t *testing.T) {
	low := LowPerformingProducts(sampleTransactions(), 10)
	require.Len(t, low, 2)

	// Ascending by quantity: Laptop (1), then Mouse (5). KB sold 13 and
	// stays out.
	assert.Equal(t, "Laptop", low[0].Name)
	assert.Equal(t, 1, low[0].Quantity)
	assert.Equal(t, "Mouse", low[1].Name)
	assert.Equal(t, 5, low[1].Quantity)
}

func TestLowPerformingProducts_ThresholdIsExclusive(t *testing.T) {
	transactions := []types.Transaction{
		tx("T1", "2024-01-01", "P1", "AtThreshold", 10, 10, "C1", "N"),
		tx("T2", "2024-01-01", "P2", "Below", 9, 10, "C1", "N"),
	}

	low := LowPerformingProducts(transactions, 10)
	require.Len(t, low, 1)
	assert.Equal(t, "Below", low[0].Name)
}

func TestLowPerformingProducts_Empty(t *testing.T) {
	assert.Empty(t, LowPerformingProducts(nil, 10))
}
