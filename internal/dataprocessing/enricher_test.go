package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"andinabi/internal/shared/testutil"
)

func TestEnrich(t *testing.T) {
	tables := Clean(testutil.SampleTables())

	rows := Enrich(tables.Sales, tables.Customers, tables.Products)

	// Unique dimension keys: the join never fans out or drops rows.
	require.Len(t, rows, len(tables.Sales))

	first := rows[0]
	assert.Equal(t, int64(100), first.SaleID)
	require.NotNil(t, first.CustomerName)
	assert.Equal(t, "Ana Torres", *first.CustomerName)
	assert.Equal(t, "Norte", *first.Region)
	assert.Equal(t, "Minorista", *first.Segment)
	assert.Equal(t, "Medellin", *first.City)
	assert.Equal(t, "SKU-10", *first.SKU)
	assert.Equal(t, "Bebidas", *first.Category)
	assert.Equal(t, 2024, first.Year)
	assert.Equal(t, "2024-01", first.YearMonth)
}

func TestEnrichKeepsOrphanedRows(t *testing.T) {
	tables := Clean(testutil.SampleTables())

	rows := Enrich(tables.Sales, tables.Customers, tables.Products)

	// The fixture's last sale references unknown customer and product
	// keys; the row survives with nil attributes.
	orphan := rows[len(rows)-1]
	assert.Equal(t, int64(104), orphan.SaleID)
	assert.Nil(t, orphan.CustomerName)
	assert.Nil(t, orphan.Region)
	assert.Nil(t, orphan.Segment)
	assert.Nil(t, orphan.SKU)
	assert.Nil(t, orphan.Description)
	// Facts and calendar fields stay intact.
	assert.Equal(t, 80.0, orphan.Subtotal)
	assert.Equal(t, "2024-03", orphan.YearMonth)
}

func TestEnrichEmptySales(t *testing.T) {
	tables := Clean(testutil.SampleTables())

	rows := Enrich(nil, tables.Customers, tables.Products)

	assert.Empty(t, rows)
}
