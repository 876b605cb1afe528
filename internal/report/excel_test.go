package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "sales_report.xlsx")

	require.NoError(t, WriteWorkbook(path, sampleTransactions(), nil, testOptions()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Summary", "Regions", "Top Products", "Customers", "Daily Trend"},
		f.GetSheetList())

	// Raw numeric values, no currency symbols.
	value, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "49000", value)

	region, err := f.GetCellValue("Regions", "A2")
	require.NoError(t, err)
	assert.Equal(t, "North", region)
}

func TestWriteWorkbook_EmptyInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, WriteWorkbook(path, nil, nil, testOptions()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "0", value)
}
