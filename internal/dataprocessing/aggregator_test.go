package dataprocessing

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"andinabi/internal/shared/testutil"
	"andinabi/pkg/contracts/domain"
)

func TestSalesTotals(t *testing.T) {
	rows := enrichedFixture(t)

	got := SalesTotals(rows)

	// Orphaned rows count toward the scalar totals.
	assert.Equal(t, 830.0, got.Revenue)
	assert.Equal(t, 240.0, got.Margin)
	assert.Equal(t, int64(15), got.Units)
}

func TestSalesTotalsEmpty(t *testing.T) {
	got := SalesTotals(nil)
	assert.Equal(t, SalesKPIs{}, got)
}

func TestReceivableTotals(t *testing.T) {
	tables := testutil.SampleTables()
	tables.Receivables = append(tables.Receivables, domain.ReceivableDocument{
		DocumentID: "FAC-099", CustomerID: domain.NewID(1),
		InvoiceDate: domain.NewDate(2024, time.March, 9),
		Balance:     777, Status: "Disputed",
	})

	got := ReceivableTotals(tables.Receivables)

	// Unknown statuses contribute to neither bucket.
	assert.Equal(t, 400.0, got.Current)
	assert.Equal(t, 600.0, got.Overdue)
}

func TestMonthlySeries(t *testing.T) {
	rows := enrichedFixture(t)

	got := MonthlySeries(rows)

	require.Len(t, got, 3)
	assert.Equal(t, MonthlyPoint{YearMonth: "2024-01", Revenue: 500, Margin: 150}, got[0])
	assert.Equal(t, MonthlyPoint{YearMonth: "2024-02", Revenue: 250, Margin: 70}, got[1])
	assert.Equal(t, MonthlyPoint{YearMonth: "2024-03", Revenue: 80, Margin: 20}, got[2])
}

func TestSalesByRegionSegment(t *testing.T) {
	rows := enrichedFixture(t)

	got := SalesByRegionSegment(rows)

	// The orphaned row has no region or segment and is excluded; the
	// grouped total is therefore 80 short of the scalar revenue KPI.
	require.Len(t, got, 2)
	assert.Equal(t, RegionSegmentSales{Region: "Norte", Segment: "Minorista", Revenue: 350}, got[0])
	assert.Equal(t, RegionSegmentSales{Region: "Sur", Segment: "Mayorista", Revenue: 400}, got[1])
}

func TestSalesByCity(t *testing.T) {
	rows := enrichedFixture(t)

	got := SalesByCity(rows)

	require.Len(t, got, 3)
	assert.Equal(t, CitySales{Region: "Norte", City: "Barranquilla", Revenue: 200}, got[0])
	assert.Equal(t, CitySales{Region: "Norte", City: "Medellin", Revenue: 150}, got[1])
	assert.Equal(t, CitySales{Region: "Sur", City: "Cali", Revenue: 400}, got[2])
}

func TestTopCustomers(t *testing.T) {
	rows := enrichedFixture(t)

	got := TopCustomers(rows)

	require.Len(t, got, 3)
	assert.Equal(t, CustomerSales{CustomerID: 2, Name: "Bruno Diaz", Revenue: 400}, got[0])
	assert.Equal(t, CustomerSales{CustomerID: 3, Name: "Carla Ruiz", Revenue: 200}, got[1])
	assert.Equal(t, CustomerSales{CustomerID: 1, Name: "Ana Torres", Revenue: 150}, got[2])
}

func TestTopCustomersTruncation(t *testing.T) {
	rows := make([]domain.EnrichedSale, 0, TopN+5)
	for i := 0; i < TopN+5; i++ {
		name := fmt.Sprintf("Cliente %02d", i)
		rows = append(rows, domain.EnrichedSale{
			CustomerID:   int64(i),
			CustomerName: &name,
			Subtotal:     float64(1000 - i),
		})
	}

	got := TopCustomers(rows)

	require.Len(t, got, TopN)
	assert.Equal(t, int64(0), got[0].CustomerID)
	assert.Equal(t, int64(TopN-1), got[TopN-1].CustomerID)
}

func TestTopCustomersTieBreak(t *testing.T) {
	nameA, nameB := "Primero", "Segundo"
	rows := []domain.EnrichedSale{
		{CustomerID: 1, CustomerName: &nameA, Subtotal: 100},
		{CustomerID: 2, CustomerName: &nameB, Subtotal: 100},
	}

	got := TopCustomers(rows)

	// Equal revenue keeps first-appearance order.
	require.Len(t, got, 2)
	assert.Equal(t, "Primero", got[0].Name)
	assert.Equal(t, "Segundo", got[1].Name)
}

func TestTopProducts(t *testing.T) {
	rows := enrichedFixture(t)

	got := TopProducts(rows)

	require.Len(t, got, 2)
	assert.Equal(t, ProductSales{ProductID: 20, SKU: "SKU-20", Description: "Papas 150g", Revenue: 450}, got[0])
	assert.Equal(t, ProductSales{ProductID: 10, SKU: "SKU-10", Description: "Gaseosa 1.5L", Revenue: 300}, got[1])
}

func TestInventoryByCenter(t *testing.T) {
	tables := testutil.SampleTables()

	got := InventoryByCenter(tables.Inventory)

	// Both CEDI Norte snapshots sum into one bucket.
	require.Len(t, got, 2)
	assert.Equal(t, CenterInventory{LogisticsCenter: "CEDI Norte", InventoryValue: 2700}, got[0])
	assert.Equal(t, CenterInventory{LogisticsCenter: "CEDI Sur", InventoryValue: 900}, got[1])
}

func TestImportsByOrigin(t *testing.T) {
	tables := testutil.SampleTables()

	got := ImportsByOrigin(tables.Imports)

	require.Len(t, got, 2)
	assert.Equal(t, OriginImports{OriginCountry: "China", CostUSD: 7000}, got[0])
	assert.Equal(t, OriginImports{OriginCountry: "Mexico", CostUSD: 3000}, got[1])
}

func TestGroupedAggregatesEmptyInput(t *testing.T) {
	assert.Empty(t, MonthlySeries(nil))
	assert.Empty(t, SalesByRegionSegment(nil))
	assert.Empty(t, SalesByCity(nil))
	assert.Empty(t, TopCustomers(nil))
	assert.Empty(t, TopProducts(nil))
	assert.Empty(t, InventoryByCenter(nil))
	assert.Empty(t, ImportsByOrigin(nil))
}
