package dataprocessing

import (
	"fmt"

	"andinabi/pkg/contracts/domain"
)

// dropNullAndDuplicateKeys is the single cleaning primitive shared by every
// keyed table: rows whose key is null are dropped, and rows that repeat an
// already-seen key are dropped, keeping the first occurrence. Input order
// is preserved, so the pass is idempotent.
func dropNullAndDuplicateKeys[T any](rows []T, key func(T) (string, bool)) []T {
	out := make([]T, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		k, ok := key(row)
		if !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, row)
	}
	return out
}

// CleanCustomers drops customers with a null or duplicate customer_id.
func CleanCustomers(rows []domain.Customer) []domain.Customer {
	return dropNullAndDuplicateKeys(rows, func(c domain.Customer) (string, bool) {
		if !c.CustomerID.Valid {
			return "", false
		}
		return fmt.Sprintf("%d", c.CustomerID.Int64), true
	})
}

// CleanProducts drops products with a null or duplicate product_id.
func CleanProducts(rows []domain.Product) []domain.Product {
	return dropNullAndDuplicateKeys(rows, func(p domain.Product) (string, bool) {
		if !p.ProductID.Valid {
			return "", false
		}
		return fmt.Sprintf("%d", p.ProductID.Int64), true
	})
}

// CleanSales drops sales where any of sale_id, date, customer_id or
// product_id is null, and exact duplicates on that four-column key.
func CleanSales(rows []domain.Sale) []domain.Sale {
	return dropNullAndDuplicateKeys(rows, func(s domain.Sale) (string, bool) {
		if !s.SaleID.Valid || !s.Date.Valid || !s.CustomerID.Valid || !s.ProductID.Valid {
			return "", false
		}
		return fmt.Sprintf("%d|%s|%d|%d",
			s.SaleID.Int64, s.Date.String(), s.CustomerID.Int64, s.ProductID.Int64), true
	})
}

// CleanReceivables drops receivable documents where any of document_id,
// customer_id or invoice_date is null, and duplicates on that key set.
func CleanReceivables(rows []domain.ReceivableDocument) []domain.ReceivableDocument {
	return dropNullAndDuplicateKeys(rows, func(r domain.ReceivableDocument) (string, bool) {
		if r.DocumentID == "" || !r.CustomerID.Valid || !r.InvoiceDate.Valid {
			return "", false
		}
		return fmt.Sprintf("%s|%d|%s", r.DocumentID, r.CustomerID.Int64, r.InvoiceDate.String()), true
	})
}

// Clean applies the per-table key constraints to the four keyed tables.
// Inventory snapshots and imports pass through unmodified; their raw rows
// aggregate as-is. Cleaning never fails: an empty result is valid and
// propagates downstream as empty aggregates.
func Clean(t domain.Tables) domain.Tables {
	return domain.Tables{
		Customers:   CleanCustomers(t.Customers),
		Products:    CleanProducts(t.Products),
		Sales:       CleanSales(t.Sales),
		Inventory:   t.Inventory,
		Imports:     t.Imports,
		Receivables: CleanReceivables(t.Receivables),
	}
}
