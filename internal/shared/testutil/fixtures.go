package testutil

import (
	"time"

	"andinabi/pkg/contracts/domain"
)

// SampleTables returns a small, internally consistent set of source
// tables covering the interesting shapes: matched and orphaned foreign
// keys, several months of sales, two regions and segments, and both
// receivable statuses. Tests across the pipeline share this fixture so
// expected aggregates stay easy to cross-check by hand.
func SampleTables() domain.Tables {
	return domain.Tables{
		Customers: []domain.Customer{
			{CustomerID: domain.NewID(1), Name: "Ana Torres", Segment: "Minorista", Region: "Norte", City: "Medellin", SignupDate: domain.NewDate(2023, time.March, 10)},
			{CustomerID: domain.NewID(2), Name: "Bruno Diaz", Segment: "Mayorista", Region: "Sur", City: "Cali", SignupDate: domain.NewDate(2023, time.June, 2)},
			{CustomerID: domain.NewID(3), Name: "Carla Ruiz", Segment: "Minorista", Region: "Norte", City: "Barranquilla", SignupDate: domain.NewDate(2024, time.January, 20)},
		},
		Products: []domain.Product{
			{ProductID: domain.NewID(10), SKU: "SKU-10", Category: "Bebidas", Subcategory: "Gaseosas", Brand: "Andina", Description: "Gaseosa 1.5L"},
			{ProductID: domain.NewID(20), SKU: "SKU-20", Category: "Snacks", Subcategory: "Papas", Brand: "Crocante", Description: "Papas 150g"},
		},
		Sales: []domain.Sale{
			{SaleID: domain.NewID(100), Date: domain.NewDate(2024, time.January, 5), CustomerID: domain.NewID(1), ProductID: domain.NewID(10), Quantity: 2, Subtotal: 100, Margin: 30},
			{SaleID: domain.NewID(101), Date: domain.NewDate(2024, time.January, 20), CustomerID: domain.NewID(2), ProductID: domain.NewID(20), Quantity: 5, Subtotal: 400, Margin: 120},
			{SaleID: domain.NewID(102), Date: domain.NewDate(2024, time.February, 3), CustomerID: domain.NewID(1), ProductID: domain.NewID(20), Quantity: 1, Subtotal: 50, Margin: 10},
			{SaleID: domain.NewID(103), Date: domain.NewDate(2024, time.February, 14), CustomerID: domain.NewID(3), ProductID: domain.NewID(10), Quantity: 3, Subtotal: 200, Margin: 60},
			// Orphaned foreign keys: no customer 99, no product 9.
			{SaleID: domain.NewID(104), Date: domain.NewDate(2024, time.March, 1), CustomerID: domain.NewID(99), ProductID: domain.NewID(9), Quantity: 4, Subtotal: 80, Margin: 20},
		},
		Inventory: []domain.InventorySnapshot{
			{LogisticsCenter: "CEDI Norte", CutoffDate: domain.NewDate(2024, time.March, 31), InventoryValue: 1500},
			{LogisticsCenter: "CEDI Sur", CutoffDate: domain.NewDate(2024, time.March, 31), InventoryValue: 900},
			{LogisticsCenter: "CEDI Norte", CutoffDate: domain.NewDate(2024, time.February, 29), InventoryValue: 1200},
		},
		Imports: []domain.ImportRecord{
			{OrderDate: domain.NewDate(2023, time.December, 1), ArrivalDate: domain.NewDate(2024, time.January, 15), OriginCountry: "China", CostUSD: 5000},
			{OrderDate: domain.NewDate(2024, time.January, 10), ArrivalDate: domain.NewDate(2024, time.February, 20), OriginCountry: "Mexico", CostUSD: 3000},
			{OrderDate: domain.NewDate(2024, time.February, 5), ArrivalDate: domain.NewDate(2024, time.March, 18), OriginCountry: "China", CostUSD: 2000},
		},
		Receivables: []domain.ReceivableDocument{
			{DocumentID: "FAC-001", CustomerID: domain.NewID(1), InvoiceDate: domain.NewDate(2024, time.February, 1), DueDate: domain.NewDate(2024, time.March, 1), Balance: 250, Status: domain.ReceivableCurrent},
			{DocumentID: "FAC-002", CustomerID: domain.NewID(2), InvoiceDate: domain.NewDate(2024, time.January, 10), DueDate: domain.NewDate(2024, time.February, 10), Balance: 600, Status: domain.ReceivableOverdue},
			{DocumentID: "FAC-003", CustomerID: domain.NewID(3), InvoiceDate: domain.NewDate(2024, time.March, 5), DueDate: domain.NewDate(2024, time.April, 5), Balance: 150, Status: domain.ReceivableCurrent},
		},
	}
}
