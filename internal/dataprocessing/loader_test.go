package dataprocessing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"andinabi/pkg/contracts/domain"
)

var sampleCSVs = map[string]string{
	CustomersFile: `customer_id,name,segment,region,city,signup_date
1,Ana Torres,Minorista,Norte,Medellin,2023-03-10
2,Bruno Diaz,Mayorista,Sur,Cali,2023-06-02
`,
	ProductsFile: `product_id,sku,category,subcategory,brand,description
10,SKU-10,Bebidas,Gaseosas,Andina,Gaseosa 1.5L
`,
	SalesFile: `sale_id,date,customer_id,product_id,quantity,subtotal_amount,total_margin_amount
100,2024-01-05,1,10,2,100,30
101,2024-01-20,2,10,5,400,120
`,
	InventoryFile: `logistics_center,cutoff_date,inventory_value_amount
CEDI Norte,2024-03-31,1500
`,
	ImportsFile: `order_date,arrival_date,origin_country,merchandise_cost_usd
2023-12-01,2024-01-15,China,5000
`,
	ReceivablesFile: `document_id,customer_id,invoice_date,due_date,balance_amount,status
FAC-001,1,2024-02-01,2024-03-01,250,Current
`,
}

func writeSampleDir(t *testing.T, overrides map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range sampleCSVs {
		if o, ok := overrides[name]; ok {
			content = o
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestLoaderLoad(t *testing.T) {
	dir := writeSampleDir(t, nil)
	loader := NewLoader(dir, nil)

	tables, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, tables.Customers, 2)
	assert.Len(t, tables.Products, 1)
	assert.Len(t, tables.Sales, 2)
	assert.Len(t, tables.Inventory, 1)
	assert.Len(t, tables.Imports, 1)
	assert.Len(t, tables.Receivables, 1)

	first := tables.Sales[0]
	assert.Equal(t, domain.NewID(100), first.SaleID)
	assert.Equal(t, "2024-01-05", first.Date.String())
	assert.Equal(t, int64(2), first.Quantity)
	assert.Equal(t, 100.0, first.Subtotal)
	assert.Equal(t, 30.0, first.Margin)

	assert.Equal(t, "CEDI Norte", tables.Inventory[0].LogisticsCenter)
	assert.Equal(t, domain.ReceivableCurrent, tables.Receivables[0].Status)
}

func TestLoaderLoadEmptyCellsAreNull(t *testing.T) {
	dir := writeSampleDir(t, map[string]string{
		CustomersFile: `customer_id,name,segment,region,city,signup_date
,Sin Clave,Minorista,Norte,Medellin,2023-03-10
2,Bruno Diaz,Mayorista,Sur,Cali,
`,
	})
	loader := NewLoader(dir, nil)

	tables, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tables.Customers, 2)

	assert.False(t, tables.Customers[0].CustomerID.Valid)
	assert.False(t, tables.Customers[1].SignupDate.Valid)
}

func TestLoaderLoadFailures(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		remove    string
		check     func(t *testing.T, err error)
	}{
		{
			name:   "missing file",
			remove: SalesFile,
			check: func(t *testing.T, err error) {
				var loadErr *LoadError
				require.ErrorAs(t, err, &loadErr)
				assert.Equal(t, SalesFile, loadErr.Source)
			},
		},
		{
			name: "missing required column",
			overrides: map[string]string{
				SalesFile: `sale_id,date,customer_id,quantity,subtotal_amount,total_margin_amount
100,2024-01-05,1,2,100,30
`,
			},
			check: func(t *testing.T, err error) {
				var schemaErr *SchemaError
				require.ErrorAs(t, err, &schemaErr)
				assert.Equal(t, SalesFile, schemaErr.Source)
				assert.Equal(t, []string{"product_id"}, schemaErr.Missing)
			},
		},
		{
			name: "malformed date is fatal",
			overrides: map[string]string{
				SalesFile: `sale_id,date,customer_id,product_id,quantity,subtotal_amount,total_margin_amount
100,05/01/2024,1,10,2,100,30
`,
			},
			check: func(t *testing.T, err error) {
				var loadErr *LoadError
				require.ErrorAs(t, err, &loadErr)
				assert.Equal(t, SalesFile, loadErr.Source)
			},
		},
		{
			name: "malformed identifier is fatal",
			overrides: map[string]string{
				CustomersFile: `customer_id,name,segment,region,city,signup_date
abc,Ana Torres,Minorista,Norte,Medellin,2023-03-10
`,
			},
			check: func(t *testing.T, err error) {
				var loadErr *LoadError
				require.ErrorAs(t, err, &loadErr)
				assert.Equal(t, CustomersFile, loadErr.Source)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeSampleDir(t, tt.overrides)
			if tt.remove != "" {
				require.NoError(t, os.Remove(filepath.Join(dir, tt.remove)))
			}

			_, err := NewLoader(dir, nil).Load(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}
